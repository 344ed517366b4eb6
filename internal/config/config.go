package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Logger LoggerConfig `mapstructure:"logger"`
	DB     DBConfig     `mapstructure:"db"`
	Mailer MailerConfig `mapstructure:"mailer"`
	Board  BoardConfig  `mapstructure:"board"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, _ := os.LookupEnv("MODE"); value == "test" {
		configFile = "../../configs/config.yaml"
	}
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Board.applyDefaults()

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func bindEnvironmentVariables() error {
	var errs []error

	server, db, logger, mailer, board := ServerConfig{}, DBConfig{}, LoggerConfig{}, MailerConfig{}, BoardConfig{}

	if err := server.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := mailer.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("MailerConfig: %w", err))
	}

	if err := board.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("BoardConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Board.validate(); err != nil {
		errs = append(errs, fmt.Errorf("BoardConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func createMultiError(errs []error) error {
	return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
}
