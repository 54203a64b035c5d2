/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads databag settings. Values are layered: built-in
// defaults, then an optional YAML file, then a .env file, then environment
// variables. The result is validated before it is returned.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/databag/errors"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
)

// Config holds all CLI and library configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Store    string         `yaml:"store" validate:"oneof=memory dynamodb"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// DynamoDBConfig describes the table bags are persisted in.
type DynamoDBConfig struct {
	Region     string `yaml:"region" validate:"required_if=Enabled true"`
	AccessKey  string `yaml:"accessKey"`
	SecretKey  string `yaml:"secretKey" validate:"required_with=AccessKey"`
	Table      string `yaml:"table" validate:"required_if=Enabled true"`
	Endpoint   string `yaml:"endpoint" validate:"omitempty,url"`
	PKTemplate string `yaml:"pkTemplate" validate:"required,contains={Owner}"`
	SKTemplate string `yaml:"skTemplate" validate:"required"`

	// Enabled mirrors Store == StoreDynamoDB and is set by Load.
	Enabled bool `yaml:"-"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "console"},
		Store: StoreMemory,
		DynamoDB: DynamoDBConfig{
			Region:     "us-east-1",
			PKTemplate: "BAG#{Owner}",
			SKTemplate: "BAG",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; envFile an
// optional dotenv file. Missing files are skipped, unreadable ones are errors.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.NewValidationError("config", fmt.Sprintf("parse %s: %v", path, err))
			}
		case stderrors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if envFile != "" {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Log.Level, "DATABAG_LOG_LEVEL")
	setString(&cfg.Log.Format, "DATABAG_LOG_FORMAT")
	setString(&cfg.Store, "DATABAG_STORE")

	setString(&cfg.DynamoDB.Region, "AWS_REGION")
	setString(&cfg.DynamoDB.AccessKey, "AWS_ACCESS_KEY")
	setString(&cfg.DynamoDB.SecretKey, "AWS_SECRET_KEY")
	setString(&cfg.DynamoDB.Table, "AWS_DDB_TABLE")
	setString(&cfg.DynamoDB.Endpoint, "DATABAG_DDB_ENDPOINT")
	setString(&cfg.DynamoDB.PKTemplate, "DATABAG_PK_TEMPLATE")
	setString(&cfg.DynamoDB.SKTemplate, "DATABAG_SK_TEMPLATE")

	cfg.Store = strings.ToLower(cfg.Store)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration and reports the first offending field.
func (c *Config) Validate() error {
	c.DynamoDB.Enabled = c.Store == StoreDynamoDB
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Namespace(), fmt.Sprintf("failed %q check (value %q)", fe.Tag(), fmt.Sprint(fe.Value())))
		}
		return errors.NewValidationError("config", err.Error())
	}
	return nil
}
