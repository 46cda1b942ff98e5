package gen

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputConfig(t *testing.T) {
	t.Run("returns grouped output settings", func(t *testing.T) {
		c := &Config{
			Target:  "./client",
			Package: "github.com/test/project/client",
			Header:  "// Custom header",
		}

		output := c.Output()

		assert.Equal(t, "./client", output.Target)
		assert.Equal(t, "github.com/test/project/client", output.Package)
		assert.Equal(t, "// Custom header", output.Header)
	})

	t.Run("handles empty config", func(t *testing.T) {
		c := &Config{}

		output := c.Output()

		assert.Empty(t, output.Target)
		assert.Empty(t, output.Package)
		assert.Empty(t, output.Header)
	})
}

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	assert.Equal(t, runtime.GOMAXPROCS(0), c.workers())
	assert.Equal(t, "model", c.ModelPackage())
	assert.Equal(t, DefaultRuntimePackage+"/config", c.RuntimePkg("config"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		option string
	}{
		{"missing package", Config{Target: "./client"}, "Package"},
		{"missing target", Config{Package: "example.com/client"}, "Target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}

	c := Config{Package: "example.com/client", Target: "./client"}
	assert.NoError(t, c.validate())
}
