// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`

	Input struct {
		File         string `mapstructure:"file" yaml:"file"`
		Sheet        string `mapstructure:"sheet" yaml:"sheet"`
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
		Encoding     string `mapstructure:"encoding" yaml:"encoding"`
	} `mapstructure:"input" yaml:"input"`

	Analysis struct {
		WindowDays       int     `mapstructure:"window_days" yaml:"window_days"`
		CashbackRate     float64 `mapstructure:"cashback_rate" yaml:"cashback_rate"`
		TransferCategory string  `mapstructure:"transfer_category" yaml:"transfer_category"`
		CashCategory     string  `mapstructure:"cash_category" yaml:"cash_category"`
		TopCategories    int     `mapstructure:"top_categories" yaml:"top_categories"`
		OtherLabel       string  `mapstructure:"other_label" yaml:"other_label"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Report struct {
		Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"report" yaml:"report"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	Settings struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"settings" yaml:"settings"`

	Market struct {
		CurrencyURL    string `mapstructure:"currency_url" yaml:"currency_url"`
		StockURL       string `mapstructure:"stock_url" yaml:"stock_url"`
		BaseCurrency   string `mapstructure:"base_currency" yaml:"base_currency"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		// RequestsPerMinute throttles calls to the market data APIs.
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"market" yaml:"market"`
}

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"json", "yaml", "table"}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig works like InitializeConfig but reads configFile when it is
// not empty instead of searching the default locations.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.bank-insights")
		v.AddConfigPath(".bank-insights")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("INSIGHTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The market API key is read from an unprefixed variable
	if err := v.BindEnv("market.api_key", "MARKET_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind MARKET_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("input.file", "data/operations.xlsx")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.csv_delimiter", ";")
	v.SetDefault("input.encoding", "utf-8")

	v.SetDefault("analysis.window_days", 90)
	v.SetDefault("analysis.cashback_rate", 0.05)
	v.SetDefault("analysis.transfer_category", "Transfers")
	v.SetDefault("analysis.cash_category", "Cash")
	v.SetDefault("analysis.top_categories", 6)
	v.SetDefault("analysis.other_label", "Other")

	v.SetDefault("report.enabled", false)
	v.SetDefault("report.directory", "reports")

	v.SetDefault("output.format", "json")

	v.SetDefault("settings.file", "user_settings.json")

	v.SetDefault("market.currency_url", "https://api.apilayer.com/exchangerates_data/latest")
	v.SetDefault("market.stock_url", "https://www.alphavantage.co/query")
	v.SetDefault("market.base_currency", "RUB")
	v.SetDefault("market.timeout_seconds", 10)
	v.SetDefault("market.requests_per_minute", 30)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.Input.CSVDelimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Input.CSVDelimiter)
	}

	switch strings.ToLower(config.Input.Encoding) {
	case "", "utf-8", "utf8", "windows-1251", "cp1251":
	default:
		return fmt.Errorf("unsupported input encoding: %s", config.Input.Encoding)
	}

	if config.Analysis.WindowDays < 1 {
		return fmt.Errorf("analysis.window_days must be positive, got: %d", config.Analysis.WindowDays)
	}

	if config.Analysis.CashbackRate < 0.0 || config.Analysis.CashbackRate > 1.0 {
		return fmt.Errorf("analysis.cashback_rate must be between 0.0 and 1.0, got: %f", config.Analysis.CashbackRate)
	}

	if config.Analysis.TopCategories < 1 {
		return fmt.Errorf("analysis.top_categories must be positive, got: %d", config.Analysis.TopCategories)
	}

	if !isOutputFormat(config.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of %s)", config.Output.Format, strings.Join(OutputFormats, ", "))
	}

	if config.Market.TimeoutSeconds < 1 || config.Market.TimeoutSeconds > 300 {
		return fmt.Errorf("market.timeout_seconds must be between 1 and 300, got: %d", config.Market.TimeoutSeconds)
	}

	if config.Market.RequestsPerMinute < 1 || config.Market.RequestsPerMinute > 1000 {
		return fmt.Errorf("market.requests_per_minute must be between 1 and 1000, got: %d", config.Market.RequestsPerMinute)
	}

	return nil
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
