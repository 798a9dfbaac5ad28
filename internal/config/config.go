package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Telegram struct {
		Token  string
		ChatID int64 `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	WB struct {
		Currency       string
		Dest           string
		SPP            int `mapstructure:"spp"`
		PriceDivider   int `mapstructure:"price_divider"`
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
	} `mapstructure:"wb"`

	Check struct {
		IntervalMinutes int `mapstructure:"interval_minutes"`
		CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
	} `mapstructure:"check"`

	Storage struct {
		DataDir string `mapstructure:"data_dir"`
	} `mapstructure:"storage"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Секреты (токен, chat_id) берём из окружения, а не из файла
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	_ = v.BindEnv("telegram.token", "APP_TELEGRAM_TOKEN", "TG_BOT_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "APP_TELEGRAM_CHAT_ID", "TG_CHAT_ID")

	v.SetDefault("wb.currency", "byn")
	v.SetDefault("wb.price_divider", 100)
	v.SetDefault("wb.timeout_seconds", 10)
	v.SetDefault("check.interval_minutes", 10)
	v.SetDefault("check.cache_ttl_minutes", 10)
	v.SetDefault("storage.data_dir", "data")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Telegram.Token == "" {
		return c, fmt.Errorf("config: telegram token is not set (TG_BOT_TOKEN)")
	}
	return c, nil
}
