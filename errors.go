package kafka

import (
	"errors"
	"fmt"
)

// PacketEncodingError is returned by a packetEncoder when asked to encode a
// value that is malformed: a string too long for the i16 length prefix, a
// negative array length that isn't the -1 null sentinel, and so on.
type PacketEncodingError struct {
	Info string
}

func (e PacketEncodingError) Error() string {
	return fmt.Sprintf("kafka: insufficient data to encode packet: %s", e.Info)
}

// PacketDecodingError is returned by a packetDecoder when the bytes on the
// wire don't describe a well-formed value: a negative string length other
// than -1, a read past the end of the buffer, and so on.
type PacketDecodingError struct {
	Info string
}

func (e PacketDecodingError) Error() string {
	return fmt.Sprintf("kafka: insufficient data to decode packet: %s", e.Info)
}

// Sentinel errors for the connection & dispatch layer.
var (
	// ErrNoBrokersAvailable is returned from New when none of the seed hosts
	// could be reached.
	ErrNoBrokersAvailable = errors.New("kafka: no seed brokers were reachable")

	// ErrNoRouteForTopic is returned when the metadata cache has no leader
	// for a topic a partition-routed call needs.
	ErrNoRouteForTopic = errors.New("kafka: no route to any leader for topic")

	// ErrUnsupportedVersion is returned when version negotiation finds no
	// overlap between the broker's advertised range and the versions this
	// client knows how to encode/decode.
	ErrUnsupportedVersion = errors.New("kafka: broker does not support a version of this API the client understands")

	// ErrClosedClient is returned by any call made after the ClusterClient's
	// connections have all been torn down.
	ErrClosedClient = errors.New("kafka: operation on closed client")
)

// KError is the broker-supplied error_code field carried by (almost) every
// response body. Zero means success. This is not the exhaustive, generated
// table of every Kafka error code; it covers the codes this engine itself
// produces, consumes for retry decisions, or returns to callers from the
// APIs it implements.
type KError int16

const (
	ErrNoError                     KError = 0
	ErrUnknown                     KError = -1
	ErrOffsetOutOfRange            KError = 1
	ErrInvalidMessage              KError = 2
	ErrUnknownTopicOrPartition     KError = 3
	ErrInvalidMessageSize          KError = 4
	ErrLeaderNotAvailable          KError = 5
	ErrNotLeaderOrFollower         KError = 6
	ErrRequestTimedOut             KError = 7
	ErrReplicaNotAvailable         KError = 9
	ErrMessageSizeTooLarge         KError = 10
	ErrOffsetMetadataTooLarge      KError = 12
	ErrNetworkException            KError = 13
	ErrCoordinatorLoadInProgress   KError = 14
	ErrCoordinatorNotAvailable     KError = 15
	ErrNotCoordinator              KError = 16
	ErrInvalidTopic                KError = 17
	ErrRecordListTooLarge          KError = 18
	ErrNotEnoughReplicas           KError = 19
	ErrNotEnoughReplicasAfterAppend KError = 20
	ErrInvalidRequiredAcks         KError = 21
	ErrIllegalGeneration           KError = 22
	ErrInconsistentGroupProtocol   KError = 23
	ErrInvalidGroupID              KError = 24
	ErrUnknownMemberID             KError = 25
	ErrInvalidSessionTimeout       KError = 26
	ErrRebalanceInProgress         KError = 27
	ErrInvalidCommitOffsetSize     KError = 28
	ErrTopicAuthorizationFailed    KError = 29
	ErrGroupAuthorizationFailed    KError = 30
	ErrClusterAuthorizationFailed  KError = 31
	ErrUnsupportedForMessageFormat KError = 43
	ErrTopicAlreadyExists          KError = 36
	ErrInvalidPartitions           KError = 37
	ErrInvalidReplicationFactor    KError = 38
)

var kErrorNames = map[KError]string{
	ErrNoError:                      "NONE",
	ErrUnknown:                      "UNKNOWN_SERVER_ERROR",
	ErrOffsetOutOfRange:             "OFFSET_OUT_OF_RANGE",
	ErrInvalidMessage:               "CORRUPT_MESSAGE",
	ErrUnknownTopicOrPartition:      "UNKNOWN_TOPIC_OR_PARTITION",
	ErrInvalidMessageSize:           "INVALID_MESSAGE_SIZE",
	ErrLeaderNotAvailable:           "LEADER_NOT_AVAILABLE",
	ErrNotLeaderOrFollower:          "NOT_LEADER_OR_FOLLOWER",
	ErrRequestTimedOut:              "REQUEST_TIMED_OUT",
	ErrReplicaNotAvailable:          "REPLICA_NOT_AVAILABLE",
	ErrMessageSizeTooLarge:          "MESSAGE_TOO_LARGE",
	ErrOffsetMetadataTooLarge:       "OFFSET_METADATA_TOO_LARGE",
	ErrNetworkException:             "NETWORK_EXCEPTION",
	ErrCoordinatorLoadInProgress:    "COORDINATOR_LOAD_IN_PROGRESS",
	ErrCoordinatorNotAvailable:      "COORDINATOR_NOT_AVAILABLE",
	ErrNotCoordinator:               "NOT_COORDINATOR",
	ErrInvalidTopic:                 "INVALID_TOPIC_EXCEPTION",
	ErrRecordListTooLarge:           "RECORD_LIST_TOO_LARGE",
	ErrNotEnoughReplicas:            "NOT_ENOUGH_REPLICAS",
	ErrNotEnoughReplicasAfterAppend: "NOT_ENOUGH_REPLICAS_AFTER_APPEND",
	ErrInvalidRequiredAcks:          "INVALID_REQUIRED_ACKS",
	ErrIllegalGeneration:            "ILLEGAL_GENERATION",
	ErrInconsistentGroupProtocol:    "INCONSISTENT_GROUP_PROTOCOL",
	ErrInvalidGroupID:               "INVALID_GROUP_ID",
	ErrUnknownMemberID:              "UNKNOWN_MEMBER_ID",
	ErrInvalidSessionTimeout:        "INVALID_SESSION_TIMEOUT",
	ErrRebalanceInProgress:          "REBALANCE_IN_PROGRESS",
	ErrInvalidCommitOffsetSize:      "INVALID_COMMIT_OFFSET_SIZE",
	ErrTopicAuthorizationFailed:     "TOPIC_AUTHORIZATION_FAILED",
	ErrGroupAuthorizationFailed:     "GROUP_AUTHORIZATION_FAILED",
	ErrClusterAuthorizationFailed:   "CLUSTER_AUTHORIZATION_FAILED",
	ErrTopicAlreadyExists:           "TOPIC_ALREADY_EXISTS",
	ErrInvalidPartitions:            "INVALID_PARTITIONS",
	ErrInvalidReplicationFactor:     "INVALID_REPLICATION_FACTOR",
	ErrUnsupportedForMessageFormat:  "UNSUPPORTED_FOR_MESSAGE_FORMAT",
}

// Error implements the error interface so a KError can be returned, wrapped,
// and compared with errors.Is like any other error.
func (e KError) Error() string {
	if e == ErrNoError {
		return "kafka server: no error"
	}
	if name, ok := kErrorNames[e]; ok {
		return fmt.Sprintf("kafka server: %s", name)
	}
	return fmt.Sprintf("kafka server: unmapped error code %d", int16(e))
}

// Retriable reports whether a client may retry the call that produced this
// error after refreshing its metadata cache.
func (e KError) Retriable() bool {
	switch e {
	case ErrLeaderNotAvailable, ErrNotLeaderOrFollower, ErrRequestTimedOut,
		ErrNetworkException, ErrCoordinatorNotAvailable, ErrCoordinatorLoadInProgress:
		return true
	default:
		return false
	}
}

// staleLeaderError reports whether code is one of the broker error codes
// that mean a cached partition leader has gone stale and a metadata
// refresh is needed before retrying.
func staleLeaderError(code KError) bool {
	switch code {
	case ErrNotLeaderOrFollower, ErrLeaderNotAvailable, ErrUnknownTopicOrPartition:
		return true
	default:
		return false
	}
}

// TopicError pairs a broker error code with the optional human-readable
// message newer API versions attach (e.g. CreateTopics v1+).
type TopicError struct {
	Err    KError
	ErrMsg *string
}

func (t *TopicError) Error() string {
	text := t.Err.Error()
	if t.ErrMsg != nil {
		text = fmt.Sprintf("%s - %s", text, *t.ErrMsg)
	}
	return text
}

func (t *TopicError) Unwrap() error {
	return t.Err
}

func (t *TopicError) encode(pe packetEncoder, version int16) error {
	pe.putInt16(int16(t.Err))
	if version >= 1 {
		if err := pe.putNullableString(t.ErrMsg); err != nil {
			return err
		}
	}
	return nil
}

func (t *TopicError) decode(pd packetDecoder, version int16) (err error) {
	kErr, err := pd.getInt16()
	if err != nil {
		return err
	}
	t.Err = KError(kErr)
	if version >= 1 {
		if t.ErrMsg, err = pd.getNullableString(); err != nil {
			return err
		}
	}
	return nil
}
