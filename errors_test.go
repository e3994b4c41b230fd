package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaleLeaderErrorClassification(t *testing.T) {
	assert.True(t, staleLeaderError(ErrNotLeaderOrFollower))
	assert.True(t, staleLeaderError(ErrLeaderNotAvailable))
	assert.True(t, staleLeaderError(ErrUnknownTopicOrPartition))
	assert.False(t, staleLeaderError(ErrNoError))
	assert.False(t, staleLeaderError(ErrRequestTimedOut))
}

func TestKErrorRetriable(t *testing.T) {
	assert.True(t, ErrLeaderNotAvailable.Retriable())
	assert.True(t, ErrCoordinatorLoadInProgress.Retriable())
	assert.False(t, ErrTopicAlreadyExists.Retriable())
}

func TestTopicErrorUnwrap(t *testing.T) {
	msg := "replication factor larger than available brokers"
	te := &TopicError{Err: ErrInvalidReplicationFactor, ErrMsg: &msg}
	assert.ErrorIs(t, te, ErrInvalidReplicationFactor)
	assert.Contains(t, te.Error(), msg)
}
