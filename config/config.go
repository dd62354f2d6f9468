// Package config loads dupfinder settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"dupfinder/dedup"
	"dupfinder/utils"

	"github.com/spf13/viper"
)

// Config is the typed view of the settings
type Config struct {
	Debug        bool
	LogFile      string
	DatabasePath string
	Thresholds   dedup.Thresholds
	Server       ServerConfig
}

// ServerConfig configures the HTTP upload service
type ServerConfig struct {
	Addr           string
	UploadDir      string
	MaxUploadBytes int64
	RecordRuns     bool
}

// Keys shared by the config file, DUPFINDER_* environment variables and flags
const (
	KeyDebug          = "debug"
	KeyLogFile        = "logfile"
	KeyDatabase       = "database"
	KeyDHashThreshold = "detect.dhash_threshold"
	KeyPHashThreshold = "detect.phash_threshold"
	KeyAddr           = "server.addr"
	KeyUploadDir      = "server.upload_dir"
	KeyMaxUpload      = "server.max_upload_bytes"
	KeyRecordRuns     = "server.record_runs"
)

// SetDefaults installs the default values on v
func SetDefaults(v *viper.Viper) {
	th := dedup.DefaultThresholds()
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDatabase, utils.GetDefaultDatabasePath())
	v.SetDefault(KeyDHashThreshold, th.DHash)
	v.SetDefault(KeyPHashThreshold, th.PHash)
	v.SetDefault(KeyAddr, ":5000")
	v.SetDefault(KeyUploadDir, "uploads")
	v.SetDefault(KeyMaxUpload, 16*1024*1024)
	v.SetDefault(KeyRecordRuns, false)
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("dupfinder")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads cfgFile into v. An empty cfgFile searches for
// dupfinder.yaml in the working directory and is not an error when absent.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dupfinder")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config can not be read: %w", err)
	}
	return nil
}

// Load builds a Config from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	dhash, err := utils.ParseThreshold(v.GetString(KeyDHashThreshold))
	if err != nil {
		return nil, fmt.Errorf("dhash: %w", err)
	}
	phash, err := utils.ParseThreshold(v.GetString(KeyPHashThreshold))
	if err != nil {
		return nil, fmt.Errorf("phash: %w", err)
	}

	cfg := &Config{
		Debug:        v.GetBool(KeyDebug),
		LogFile:      v.GetString(KeyLogFile),
		DatabasePath: v.GetString(KeyDatabase),
		Thresholds:   dedup.Thresholds{DHash: dhash, PHash: phash},
		Server: ServerConfig{
			Addr:           v.GetString(KeyAddr),
			UploadDir:      v.GetString(KeyUploadDir),
			MaxUploadBytes: v.GetInt64(KeyMaxUpload),
			RecordRuns:     v.GetBool(KeyRecordRuns),
		},
	}

	if cfg.Server.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("invalid max upload size %d", cfg.Server.MaxUploadBytes)
	}

	return cfg, nil
}
