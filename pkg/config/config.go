package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	HTTPPort int `mapstructure:"http_port"`

	Currency string `mapstructure:"currency"`

	PaymentAPIBaseURL   string `mapstructure:"payment_api_base_url"`
	PaymentAPIToken     string `mapstructure:"payment_api_token"`
	CheckoutRedirectURL string `mapstructure:"checkout_redirect_url"`

	TaskTrackerBaseURL string `mapstructure:"tasktracker_base_url"`
	TaskTrackerToken   string `mapstructure:"tasktracker_token"`
	TaskTrackerListID  string `mapstructure:"tasktracker_list_id"`

	NewsletterBaseURL string `mapstructure:"newsletter_base_url"`
	NewsletterAPIKey  string `mapstructure:"newsletter_api_key"`
	NewsletterListID  string `mapstructure:"newsletter_list_id"`

	RecordsDBPath string `mapstructure:"records_db_path"`
}

// Load reads configuration from environment variables, optionally overlaid by
// a config file named studio.yaml in the working directory. Environment keys
// are the upper-cased mapstructure tags (HTTP_PORT, PAYMENT_API_BASE_URL, ...).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", 8080)
	v.SetDefault("currency", "USD")
	v.SetDefault("checkout_redirect_url", "https://studio.pixelpatch.co/checkout/success")
	v.SetDefault("records_db_path", "studio.db")

	v.SetConfigName("studio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind explicitly so AutomaticEnv sees keys that have no default.
	for _, key := range []string{
		"payment_api_base_url", "payment_api_token",
		"tasktracker_base_url", "tasktracker_token", "tasktracker_list_id",
		"newsletter_base_url", "newsletter_api_key", "newsletter_list_id",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding env key %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}
