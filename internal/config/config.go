// Package config loads service configuration from an optional YAML file,
// applies environment overrides, and hands the result to main as a plain
// value. Nothing in here is a process-wide singleton: every constructor
// that needs a setting receives it explicitly.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for the service.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`

	Backup BackupConfig `yaml:"backup"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// BackupConfig controls the dump/restore driver.
type BackupConfig struct {
	Dir            string `yaml:"dir"`
	DumpCommand    string `yaml:"dump_command"`
	RestoreCommand string `yaml:"restore_command"`
	// OnMutation enables the post-commit dump after every create/update/delete.
	OnMutation bool `yaml:"on_mutation"`
	// Retention is the number of dump files kept after pruning. 0 keeps all.
	Retention int `yaml:"retention"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		ListenAddr: ":9000",
		DBPath:     "maintlog.db",
	}
	cfg.Backup.Dir = "backups"
	cfg.Backup.DumpCommand = "sqlite3"
	cfg.Backup.RestoreCommand = "sqlite3"
	cfg.Backup.OnMutation = true
	cfg.Backup.Retention = 30
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), then applies MAINTLOG_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.ListenAddr, "MAINTLOG_LISTEN_ADDR")
	setString(&c.DBPath, "MAINTLOG_DB")
	setString(&c.Backup.Dir, "MAINTLOG_BACKUP_DIR")
	setString(&c.Backup.DumpCommand, "MAINTLOG_DUMP_COMMAND")
	setString(&c.Backup.RestoreCommand, "MAINTLOG_RESTORE_COMMAND")
	setString(&c.Log.Level, "MAINTLOG_LOG_LEVEL")
	setString(&c.Log.Format, "MAINTLOG_LOG_FORMAT")
	if v := os.Getenv("MAINTLOG_BACKUP_ON_MUTATION"); v != "" {
		c.Backup.OnMutation = v == "true" || v == "1"
	}
	if v := os.Getenv("MAINTLOG_BACKUP_RETENTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backup.Retention = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
