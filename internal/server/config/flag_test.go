package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("all flags set", func(t *testing.T) {
		os.Args = []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "30",
		}

		config := &Config{}

		require.NotPanics(t, func() { parseFlags(config) })

		assert.Equal(t, "127.0.0.1:9090", config.EndpointAddr)
		assert.Equal(t, "db", config.DatabaseDSN)
		assert.Equal(t, "secret", config.SecretKey)
		assert.Equal(t, 30*time.Minute, config.AccessTokenValidityDuration)
	})

	t.Run("missing flags keep existing values", func(t *testing.T) {
		os.Args = []string{"cmd"}

		config := &Config{}
		config.LoadDefaults()

		require.NotPanics(t, func() { parseFlags(config) })

		assert.Equal(t, ":8080", config.EndpointAddr)
		assert.Equal(t, "secretKey", config.SecretKey)
		assert.Equal(t, 24*time.Hour, config.AccessTokenValidityDuration)
	})
}
