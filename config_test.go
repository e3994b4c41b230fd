package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Positive(t, cfg.DialTimeout)
	assert.Positive(t, cfg.RequestTimeout)
	assert.Positive(t, cfg.MaxOpenRequests)
	assert.NotNil(t, cfg.registry())
	assert.NotNil(t, cfg.Logger)
}

func TestConfigRegistryFallsBackWhenNil(t *testing.T) {
	cfg := &Config{}
	assert.NotNil(t, cfg.registry())
}
