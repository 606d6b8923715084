package utils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.Empty(t, config.ToMap())
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	err := os.WriteFile(envFile, []byte("MINUTES_TEST_KEY1=test_value1\nMINUTES_TEST_KEY2=test_value2\n"), 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("MINUTES_TEST_KEY1")
		os.Unsetenv("MINUTES_TEST_KEY2")
	})

	config := NewConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"), envFile)

	require.NotNil(t, config)
	assert.Equal(t, "test_value1", config.Get("MINUTES_TEST_KEY1"))
	assert.Equal(t, "test_value2", config.Get("MINUTES_TEST_KEY2"))
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		assert.Equal(t, "value", config.GetWithDefault("existing", "default"))
	})

	t.Run("non-existing key", func(t *testing.T) {
		assert.Equal(t, "default", config.GetWithDefault("missing", "default"))
	})

	t.Run("empty value key", func(t *testing.T) {
		assert.Equal(t, "default", config.GetWithDefault("empty", "default"))
	})
}

func TestConfigToMapIsACopy(t *testing.T) {
	config := NewConfig(map[string]string{"b": "2", "a": "1"})

	m := config.ToMap()
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)

	m["a"] = "changed"
	assert.Equal(t, "1", config.Get("a"))
}

func TestConfigConcurrentReads(t *testing.T) {
	config := NewConfig(map[string]string{"counter": "0"})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				config.Get("counter")
				config.GetWithDefault("missing", "x")
				config.ToMap()
			}
		}()
	}

	wg.Wait()
}

func TestEnvFile(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	assert.Equal(t, ".env", EnvFile())

	t.Setenv("ENV_FILE", "custom.env")
	assert.Equal(t, "custom.env", EnvFile())
}
