package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"

	"signal_bot/internal/engine"
	"signal_bot/internal/models"
	"signal_bot/pkg/tracing"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	defaultConfigFile = "values_local.yaml"
	defaultConfigDir  = "configs"
)

// Config ...
type Config struct {
	Service struct {
		Name       string `mapstructure:"name"`
		HealthAddr string `mapstructure:"health_addr"`
		LogLevel   string `mapstructure:"log_level"`
	} `mapstructure:"service"`

	Market   MarketConfig   `mapstructure:"market"`
	Engine   engine.Config  `mapstructure:"engine"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Sound    SoundConfig    `mapstructure:"sound"`
	Tracing  tracing.Config `mapstructure:"tracing"`

	DefaultLanguage string `mapstructure:"default_language"`
	DB              string `mapstructure:"db_dsn"`
}

type MarketConfig struct {
	RESTURL        string        `mapstructure:"rest_url"`
	WSURL          string        `mapstructure:"ws_url"`
	Symbols        []string      `mapstructure:"symbols"`
	Timeframe      string        `mapstructure:"timeframe"`
	Limit          int           `mapstructure:"limit"`
	Interval       time.Duration `mapstructure:"interval"` // в оригинале 3600000 мс
	StreamTrigger  bool          `mapstructure:"stream_trigger"`
	IncludeForming bool          `mapstructure:"include_forming"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// TF — уже провалидированный таймфрейм.
func (m MarketConfig) TF() models.Timeframe {
	tf, _ := models.ParseTimeframe(m.Timeframe)
	return tf
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type SoundConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Command string `mapstructure:"command"`
	File    string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "signal_bot")
	v.SetDefault("service.health_addr", ":8080")
	v.SetDefault("service.log_level", "info")

	v.SetDefault("market.rest_url", "https://www.okx.com")
	v.SetDefault("market.ws_url", "wss://ws.okx.com:8443/ws/v5/business")
	v.SetDefault("market.symbols", []string{
		"BTC/USDT", "ETH/USDT", "TON/USDT", "FPI/USDT", "BNB/USDT",
		"XRP/USDT", "ADA/USDT", "DOGE/USDT", "SOL/USDT", "DOT/USDT",
	})
	v.SetDefault("market.timeframe", "1h")
	v.SetDefault("market.limit", 100)
	v.SetDefault("market.interval", time.Hour)
	v.SetDefault("market.stream_trigger", false)
	v.SetDefault("market.include_forming", false)
	v.SetDefault("market.request_timeout", 10*time.Second)

	def := engine.DefaultConfig()
	v.SetDefault("engine.ma_window", def.Windows.MA)
	v.SetDefault("engine.rsi_window", def.Windows.RSI)
	v.SetDefault("engine.macd_short", def.Windows.MACDShort)
	v.SetDefault("engine.macd_long", def.Windows.MACDLong)
	v.SetDefault("engine.macd_signal", def.Windows.MACDSignal)
	v.SetDefault("engine.rsi_oversold", def.Thresholds.RSIOversold)
	v.SetDefault("engine.rsi_overbought", def.Thresholds.RSIOverbought)
	v.SetDefault("engine.volatility_pct", def.Thresholds.VolatilityPct)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)

	v.SetDefault("sound.enabled", true)
	v.SetDefault("sound.command", "mpg123 -q")
	v.SetDefault("sound.file", "cash.mp3")

	v.SetDefault("tracing.host", "")
	v.SetDefault("tracing.port", 6831)

	v.SetDefault("default_language", "uk")
	v.SetDefault("db_dsn", "")
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_dsn", "DB_DSN", "DATABASE_DSN")
	_ = v.BindEnv("telegram.token", "TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigFile
	}
	dir := os.Getenv(configDirENV)
	if dir == "" {
		dir = defaultConfigDir
	}
	v.SetConfigFile(filepath.Join(dir, configFileName))
	if err := v.ReadInConfig(); err != nil {
		// без файла живём на дефолтах и env
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.Wrap(err, "read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := models.ParseTimeframe(c.Market.Timeframe); err != nil {
		return pkgerrors.Wrap(err, "market.timeframe")
	}
	if len(c.Market.Symbols) == 0 {
		return pkgerrors.New("market.symbols is empty")
	}
	if c.Market.Limit <= 0 {
		return pkgerrors.Errorf("market.limit must be > 0, got %d", c.Market.Limit)
	}
	if c.Market.Interval <= 0 {
		return pkgerrors.Errorf("market.interval must be > 0, got %s", c.Market.Interval)
	}
	if err := c.Engine.Validate(); err != nil {
		return pkgerrors.Wrap(err, "engine")
	}
	// иначе каждый цикл падает с InsufficientData
	if need := c.Engine.MinCandles(); c.Market.Limit < need {
		return pkgerrors.Errorf("market.limit %d is below %d candles the engine windows need", c.Market.Limit, need)
	}
	return nil
}
