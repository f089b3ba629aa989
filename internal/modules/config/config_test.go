package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := `
telegram:
  token: file-token
  main_admin_id: "42"
service:
  admin_port: 9090
state:
  driver: file
  file_path: /tmp/x.json
market:
  providers: [binance, coingecko]
  symbols: [BTCUSDT, ETHUSDT]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(yml), 0o644))

	t.Setenv(configDirENV, dir)
	t.Setenv(configFilePathENV, "test.yaml")
	t.Setenv(tokenTelegramENV, "env-token")
	t.Setenv("CYCLE_INTERVAL", "1m")
	t.Setenv("PAIRS_PER_CYCLE", "3")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Telegram.Token)
	require.Equal(t, "42", cfg.Telegram.MainAdminID)
	require.Equal(t, 9090, cfg.Service.AdminPort)
	require.Equal(t, []string{"binance", "coingecko"}, cfg.Market.Providers)
	require.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, cfg.Market.Symbols)
	require.Equal(t, time.Minute, cfg.CycleInterval)
	require.Equal(t, 3, cfg.PairsPerCycle)
	require.Equal(t, 100, cfg.FreeTierCapacity)
	require.Equal(t, 48*time.Hour, cfg.CooldownWindow)
	require.Equal(t, 2*time.Second, cfg.Market.MinRequestDelay)
	require.Equal(t, "4h", cfg.Market.ShortInterval)
}

func TestNewConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv(configDirENV, t.TempDir())
	t.Setenv(mainAdminENV, "304403982")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "file", cfg.State.Driver)
	require.Len(t, cfg.Market.Symbols, 21)
	require.Equal(t, 5, cfg.HistorySize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "no admin", mutate: func(c *Config) { c.Telegram.MainAdminID = "" }, wantErr: true},
		{name: "bad driver", mutate: func(c *Config) { c.State.Driver = "mongo" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.State.Driver = "postgres" }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) { c.State.Driver = "postgres"; c.DB = "postgres://x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Telegram.MainAdminID = "1"
			c.State.Driver = "file"
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
