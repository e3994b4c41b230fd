package kafka

import "fmt"

// KafkaVersion represents a broker release, used by each request schema's
// requiredVersion() to document the lowest broker release that understands
// the version being encoded.
type KafkaVersion struct {
	version [4]uint
}

func newKafkaVersion(major, minor, veryMinor, patch uint) KafkaVersion {
	return KafkaVersion{[4]uint{major, minor, veryMinor, patch}}
}

// IsAtLeast reports whether v is the same as or newer than other.
func (v KafkaVersion) IsAtLeast(other KafkaVersion) bool {
	for i := range v.version {
		if v.version[i] > other.version[i] {
			return true
		} else if v.version[i] < other.version[i] {
			return false
		}
	}
	return true
}

func (v KafkaVersion) String() string {
	if v.version[0] == 0 {
		return fmt.Sprintf("0.%d.%d.%d", v.version[1], v.version[2], v.version[3])
	}
	return fmt.Sprintf("%d.%d.%d", v.version[0], v.version[1], v.version[2])
}

var (
	V0_8_2_0  = newKafkaVersion(0, 8, 2, 0)
	V0_9_0_0  = newKafkaVersion(0, 9, 0, 0)
	V0_10_0_0 = newKafkaVersion(0, 10, 0, 0)
	V0_10_1_0 = newKafkaVersion(0, 10, 1, 0)
	V0_10_2_0 = newKafkaVersion(0, 10, 2, 0)
	V0_11_0_0 = newKafkaVersion(0, 11, 0, 0)
	V1_0_0_0  = newKafkaVersion(1, 0, 0, 0)
	V1_1_0_0  = newKafkaVersion(1, 1, 0, 0)
	V2_0_0_0  = newKafkaVersion(2, 0, 0, 0)
	V2_1_0_0  = newKafkaVersion(2, 1, 0, 0)
	V2_2_0_0  = newKafkaVersion(2, 2, 0, 0)
	V2_3_0_0  = newKafkaVersion(2, 3, 0, 0)
	V2_8_0_0  = newKafkaVersion(2, 8, 0, 0)

	// MinVersion is the oldest release this client can speak to at all.
	MinVersion = V0_8_2_0
	// MaxVersion is the newest release this client was written against.
	MaxVersion = V2_8_0_0
)
