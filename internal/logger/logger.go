package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hirehall/jobboard/internal/config"
	log "github.com/sirupsen/logrus"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb      = "db"
	ErrorTypeMailApi = "mail_api"
	ErrorTypeHttp    = "http"
)

var logFile *os.File

func Setup(cfg config.LoggerConfig) {

	logDir := filepath.Dir(cfg.OutputFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	var err error
	logFile, err = os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)

	customFormatter := &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	}
	log.SetFormatter(customFormatter)
	addPrometheusHook()

	switch cfg.LogLevel {
	case config.LevelInfo:
		log.SetLevel(log.InfoLevel)
	case config.LevelDebug:
		log.SetLevel(log.DebugLevel)
	case config.LevelWarning:
		log.SetLevel(log.WarnLevel)
	case config.LevelError:
		log.SetLevel(log.ErrorLevel)
	case config.LevelFatal:
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
	}
}
