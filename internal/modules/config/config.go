package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	mainAdminENV      = "MAIN_ADMIN_ID"
	stateDriverENV    = "STATE_DRIVER"
	redisAddrENV      = "REDIS_ADDR"
)

// Config ...
type Config struct {
	Telegram struct {
		Token       string `yaml:"token"`
		MainAdminID string `yaml:"main_admin_id"`
		PollTimeout int    `yaml:"poll_timeout"` // секунды long-poll getUpdates
		// пауза между отправками при рассылке
		BroadcastDelay time.Duration `yaml:"broadcast_delay"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Name     string `yaml:"name"`
		LogLevel string `yaml:"log_level"`
		Host     string `yaml:"host"`
		// health + /metrics
		AdminPort int `yaml:"admin_port"`
	} `yaml:"service"`
	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`

	State struct {
		Driver    string `yaml:"driver"` // file | postgres | redis
		FilePath  string `yaml:"file_path"`
		RedisAddr string `yaml:"redis_addr"`
		RedisDB   int    `yaml:"redis_db"`
		RedisPass string `yaml:"redis_password"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"state"`

	Profile struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"profile"`

	Market struct {
		Providers []string `yaml:"providers"` // порядок цепочки, synthetic всегда последний
		// минимальная пауза между запросами к внешним API
		MinRequestDelay time.Duration `yaml:"min_request_delay"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		CandleLimit     int           `yaml:"candle_limit"`
		ShortInterval   string        `yaml:"short_interval"`
		LongInterval    string        `yaml:"long_interval"`
		Symbols         []string      `yaml:"symbols"`
	} `yaml:"market"`

	Payments struct {
		// метод оплаты (btc, eth, usdt, bank) -> реквизиты
		Addresses map[string]string `yaml:"addresses"`
	} `yaml:"payments"`

	// Доступ
	FreeTierCapacity int
	DefaultPaidDays  int

	// Раннер
	CycleInterval  time.Duration
	PollInterval   time.Duration
	PairsPerCycle  int
	CooldownWindow time.Duration
	HistorySize    int
	RestartDelay   time.Duration
	ErrorBackoff   time.Duration
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := getenvDefault(configFilePathENV, "values_local.yaml")
	configDir := getenvDefault(configDirENV, "configs")

	config := Config{
		FreeTierCapacity: intFromEnv("FREE_TIER_CAPACITY", 100),
		DefaultPaidDays:  intFromEnv("DEFAULT_PAID_DAYS", 30),

		CycleInterval:  durationFromEnv("CYCLE_INTERVAL", "15m"),
		PollInterval:   durationFromEnv("RESTART_POLL_INTERVAL", "5s"),
		PairsPerCycle:  intFromEnv("PAIRS_PER_CYCLE", 1),
		CooldownWindow: durationFromEnv("COOLDOWN_WINDOW", "48h"),
		HistorySize:    intFromEnv("HISTORY_SIZE", 5),
		RestartDelay:   durationFromEnv("RESTART_DELAY", "3s"),
		ErrorBackoff:   durationFromEnv("ERROR_BACKOFF", "10s"),
	}

	file, err := os.Open(configDir + "/" + configFileName)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config.NewConfig: open: %w", err)
	}
	if file != nil {
		defer func() {
			_ = file.Close()
		}()
		if err = yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("config.NewConfig: decode: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults()

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	if token := os.Getenv(tokenTelegramENV); token != "" {
		c.Telegram.Token = token
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		c.DB = dsn
	}
	if admin := os.Getenv(mainAdminENV); admin != "" {
		c.Telegram.MainAdminID = admin
	}
	if driver := os.Getenv(stateDriverENV); driver != "" {
		c.State.Driver = driver
	}
	if addr := os.Getenv(redisAddrENV); addr != "" {
		c.State.RedisAddr = addr
	}
	if syms := os.Getenv("SYMBOLS"); syms != "" {
		c.Market.Symbols = strings.Split(syms, ",")
	}
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "signal_bot"
	}
	if c.Service.LogLevel == "" {
		c.Service.LogLevel = "info"
	}
	if c.Service.AdminPort == 0 {
		c.Service.AdminPort = 8080
	}
	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = 30
	}
	if c.Telegram.BroadcastDelay == 0 {
		c.Telegram.BroadcastDelay = 100 * time.Millisecond
	}
	if c.State.Driver == "" {
		c.State.Driver = "file"
	}
	if c.State.FilePath == "" {
		c.State.FilePath = "data/state.json"
	}
	if c.State.KeyPrefix == "" {
		c.State.KeyPrefix = "signal_bot"
	}
	if c.Profile.SQLitePath == "" {
		c.Profile.SQLitePath = "data/profiles.db"
	}
	if len(c.Market.Providers) == 0 {
		c.Market.Providers = []string{"coinpaprika", "coingecko"}
	}
	if c.Market.MinRequestDelay == 0 {
		c.Market.MinRequestDelay = 2 * time.Second
	}
	if c.Market.RequestTimeout == 0 {
		c.Market.RequestTimeout = 10 * time.Second
	}
	if c.Market.CandleLimit == 0 {
		c.Market.CandleLimit = 250
	}
	if c.Market.ShortInterval == "" {
		c.Market.ShortInterval = "4h"
	}
	if c.Market.LongInterval == "" {
		c.Market.LongInterval = "1d"
	}
	if len(c.Market.Symbols) == 0 {
		c.Market.Symbols = DefaultSymbols()
	}
	if c.PairsPerCycle <= 0 {
		c.PairsPerCycle = 1
	}
	if c.HistorySize <= 0 {
		c.HistorySize = 5
	}
}

// Validate проверяет то, без чего бот не стартует
func (c *Config) Validate() error {
	if c.Telegram.MainAdminID == "" {
		return fmt.Errorf("config.Validate: %s is required", mainAdminENV)
	}
	switch c.State.Driver {
	case "file", "postgres", "redis":
	default:
		return fmt.Errorf("config.Validate: unknown state driver %q", c.State.Driver)
	}
	if c.State.Driver == "postgres" && c.DB == "" {
		return fmt.Errorf("config.Validate: %s is required for postgres state", databaseDSN)
	}
	if c.FreeTierCapacity < 0 {
		return fmt.Errorf("config.Validate: negative free tier capacity")
	}
	return nil
}

// DefaultSymbols мониторим только USDT-пары
func DefaultSymbols() []string {
	return []string{
		"LDOUSDT", "EIGENUSDT", "THETAUSDT", "DOGEUSDT", "SOLUSDT", "LTCUSDT", "BTCUSDT",
		"ETHUSDT", "XRPUSDT", "WLDUSDT", "BNBUSDT", "SUIUSDT", "SEIUSDT", "SANDUSDT",
		"ARBUSDT", "OPUSDT", "XLMUSDT", "ADAUSDT", "UNIUSDT", "DOTUSDT", "ATOMUSDT",
	}
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
