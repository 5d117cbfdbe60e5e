package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: "9090"
logging:
  level: debug
registry:
  trackedChains:
    - ethereum
    - optimismSepolia
gasOracle:
  cacheTTLSeconds: 45
  feeBufferPercent: 25
rpcClient:
  limiterPeriod: 250ms
  limiterBurst: 2
selector:
  defaultPreferLayer2: true
  defaultMaxGasGwei: "30"
`

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"ethereum", "optimismSepolia"}, cfg.Registry.TrackedChains)
	assert.Equal(t, 45, cfg.GasOracle.CacheTTLSeconds)
	assert.EqualValues(t, 25, cfg.GasOracle.FeeBufferPercent)
	assert.True(t, cfg.Selector.DefaultPreferLayer2)
	assert.Equal(t, "30", cfg.Selector.DefaultMaxGasGwei)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "0.1", cfg.GasOracle.MinMaxFeeGwei)
	assert.Equal(t, 8, cfg.GasOracle.MaxConcurrentFetches)
	assert.Equal(t, 250*time.Millisecond, cfg.LimiterPeriodDuration())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigOrDefault(t *testing.T) {
	t.Parallel()

	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.GasOracle.CacheTTLSeconds)
	assert.Equal(t, 100*time.Millisecond, cfg.LimiterPeriodDuration())
}

func TestApplyDefaults_RepairsInvalidValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		GasOracle: GasOracleConfig{CacheTTLSeconds: -5},
		RPCClient: RPCClientConfig{LimiterPeriod: "not-a-duration"},
	}
	cfg.applyDefaults()

	assert.Equal(t, 30, cfg.GasOracle.CacheTTLSeconds)
	assert.Equal(t, 8, cfg.GasOracle.MaxConcurrentFetches)
	assert.Equal(t, 1, cfg.RPCClient.LimiterBurst)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100*time.Millisecond, cfg.LimiterPeriodDuration(),
		"unparseable limiter period falls back")
}
