package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type BoardConfig struct {
	SavedSearchCap            int           `mapstructure:"saved_search_cap"`
	TailoredPerSearch         int           `mapstructure:"tailored_per_search"`
	TailoredLimit             int           `mapstructure:"tailored_limit"`
	FilterOptionsCacheTTL     time.Duration `mapstructure:"filter_options_cache_ttl"`
	NotificationRetentionDays int           `mapstructure:"notification_retention_days"`
}

func (config *BoardConfig) applyDefaults() {
	if config.SavedSearchCap == 0 {
		config.SavedSearchCap = 20
	}
	if config.TailoredPerSearch == 0 {
		config.TailoredPerSearch = 5
	}
	if config.TailoredLimit == 0 {
		config.TailoredLimit = 12
	}
	if config.FilterOptionsCacheTTL == 0 {
		config.FilterOptionsCacheTTL = 10 * time.Minute
	}
	if config.NotificationRetentionDays == 0 {
		config.NotificationRetentionDays = 30
	}
}

func (config BoardConfig) validate() error {

	if config.SavedSearchCap < 0 {
		return fmt.Errorf("saved search cap must not be negative")
	}

	if config.TailoredPerSearch <= 0 || config.TailoredLimit <= 0 {
		return fmt.Errorf("tailored job limits must be greater than zero")
	}

	if config.NotificationRetentionDays <= 0 {
		return fmt.Errorf("notification retention must be greater than zero")
	}

	return nil
}

func (config BoardConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("board.saved_search_cap", "SAVED_SEARCH_CAP"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("board.notification_retention_days", "NOTIFICATION_RETENTION_DAYS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
