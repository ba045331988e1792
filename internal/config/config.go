package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings for the simulator binary, loaded from
// environment variables with an optional .env file.
type Config struct {
	ServerPort       string  `mapstructure:"SERVER_PORT"`
	RedisAddr        string  `mapstructure:"REDIS_ADDR"`
	QuoteTTLSeconds  int     `mapstructure:"QUOTE_TTL_SECONDS"`
	SourceFeeFlat    string  `mapstructure:"SOURCE_FEE_FLAT"`
	SourceFeeBps     int64   `mapstructure:"SOURCE_FEE_BPS"`
	SchemeFeeFlat    string  `mapstructure:"SCHEME_FEE_FLAT"`
	SchemeFeeBps     int64   `mapstructure:"SCHEME_FEE_BPS"`
	EnableLogging    bool    `mapstructure:"ENABLE_LOGGING"`
	RequestTimeout   int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	ShutdownTimeout  int     `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// LoadConfig reads configuration from environment variables, falling back to
// an optional .env file at path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8090")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("QUOTE_TTL_SECONDS", 600)
	viper.SetDefault("SOURCE_FEE_FLAT", "4.00")
	viper.SetDefault("SOURCE_FEE_BPS", 20)
	viper.SetDefault("SCHEME_FEE_FLAT", "0.50")
	viper.SetDefault("SCHEME_FEE_BPS", 5)
	viper.SetDefault("ENABLE_LOGGING", true)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("REDIS_ADDR")
	_ = viper.BindEnv("QUOTE_TTL_SECONDS")
	_ = viper.BindEnv("SOURCE_FEE_FLAT")
	_ = viper.BindEnv("SOURCE_FEE_BPS")
	_ = viper.BindEnv("SCHEME_FEE_FLAT")
	_ = viper.BindEnv("SCHEME_FEE_BPS")
	_ = viper.BindEnv("ENABLE_LOGGING")
	_ = viper.BindEnv("REQUEST_TIMEOUT_SECONDS")
	_ = viper.BindEnv("SHUTDOWN_TIMEOUT_SECONDS")

	// The .env file is optional; only a parse failure is an error.
	if readErr := viper.ReadInConfig(); readErr != nil {
		if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, readErr
		}
	}

	err = viper.Unmarshal(&config)
	return config, err
}
