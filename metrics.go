package kafka

import (
	"fmt"

	"github.com/rcrowley/go-metrics"
)

// getOrRegisterTopicMeter tags a meter with the topic name so per-topic
// fetch/produce rates show up as distinct series in the registry.
func getOrRegisterTopicMeter(name, topic string, r metrics.Registry) metrics.Meter {
	return metrics.GetOrRegisterMeter(fmt.Sprintf("%s-for-topic-%s", name, topic), r)
}

// getOrRegisterBrokerMeter tags a meter with the broker's node id, used by
// dispatch.go to track per-broker request rate.
func getOrRegisterBrokerMeter(name string, nodeID int32, r metrics.Registry) metrics.Meter {
	return metrics.GetOrRegisterMeter(fmt.Sprintf("%s-for-broker-%d", name, nodeID), r)
}

// getOrRegisterBrokerTimer tracks per-broker round-trip latency.
func getOrRegisterBrokerTimer(name string, nodeID int32, r metrics.Registry) metrics.Timer {
	return metrics.GetOrRegisterTimer(fmt.Sprintf("%s-for-broker-%d", name, nodeID), r)
}
