package config

import (
	"github.com/spf13/viper"
)

type MailerConfig struct {
	APIURL               string  `mapstructure:"api_url"`
	APIKey               string  `mapstructure:"api_key"`
	FromAddress          string  `mapstructure:"from_address"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
}

// Enabled reports whether outbound email is configured. The board runs
// without it; matching notifications then stay in-app only.
func (config MailerConfig) Enabled() bool {
	return config.APIURL != ""
}

func (config MailerConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("mailer.api_url", "MAILER_API_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("mailer.api_key", "MAILER_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("mailer.from_address", "MAILER_FROM_ADDRESS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
