package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Envs must stay empty until Load runs, so packages importing config for its
// constants never trip over missing environment variables.
func TestEnvsUnloadedByDefault(t *testing.T) {
	assert.Equal(t, Config{}, Envs)
}

func TestEnvHelpers(t *testing.T) {
	t.Run("defaults apply when unset", func(t *testing.T) {
		assert.Equal(t, "release", getEnvWithDefault("GRIDPATH_TEST_MODE", "release"))
		assert.Equal(t, 42, getEnvAsIntWithDefault("GRIDPATH_TEST_TTL", 42))
	})

	t.Run("set values win over defaults", func(t *testing.T) {
		t.Setenv("GRIDPATH_TEST_MODE", "debug")
		t.Setenv("GRIDPATH_TEST_TTL", "7")
		assert.Equal(t, "debug", getEnvWithDefault("GRIDPATH_TEST_MODE", "release"))
		assert.Equal(t, 7, getEnvAsIntWithDefault("GRIDPATH_TEST_TTL", 42))
	})
}
