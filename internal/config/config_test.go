package config

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")
	os.Setenv("SERVER_PORT", "8181")
	os.Setenv("METRICS_PORT", "9191")
	os.Setenv("LOG_LEVEL", "DEBUG")
	os.Setenv("APP_NAME", "jobboard-test")
	os.Setenv("DB_CONNECTION_STRING", "override.db")
	os.Setenv("MAILER_API_URL", "https://mail.example.com/send")
	os.Setenv("MAILER_API_KEY", "overrideKey")
	os.Setenv("MAILER_FROM_ADDRESS", "jobs@example.com")
	os.Setenv("SAVED_SEARCH_CAP", strconv.Itoa(7))
	os.Setenv("NOTIFICATION_RETENTION_DAYS", strconv.Itoa(14))

	cfg := Get()

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, 9191, cfg.Server.MetricsPort)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "jobboard-test", cfg.Logger.AppName)
	assert.Equal(t, "override.db", cfg.DB.ConnectionString)
	assert.Equal(t, "https://mail.example.com/send", cfg.Mailer.APIURL)
	assert.Equal(t, "overrideKey", cfg.Mailer.APIKey)
	assert.Equal(t, "jobs@example.com", cfg.Mailer.FromAddress)
	assert.Equal(t, 7, cfg.Board.SavedSearchCap)
	assert.Equal(t, 14, cfg.Board.NotificationRetentionDays)
}

func Test_Config_DefaultsAreApplied(t *testing.T) {

	board := BoardConfig{}
	board.applyDefaults()

	assert.Equal(t, 20, board.SavedSearchCap)
	assert.Equal(t, 5, board.TailoredPerSearch)
	assert.Equal(t, 12, board.TailoredLimit)
	assert.Equal(t, 30, board.NotificationRetentionDays)
}
