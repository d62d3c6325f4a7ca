// Package config loads settings from flags, the environment (INVOICER_*) and
// an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"invoicer-cli/internal/mail"
)

type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// InvoicesDir receives generated invoice documents.
	InvoicesDir string

	SMTP mail.SMTPConfig
}

// Load reads configuration. cfgFile may be empty, in which case
// $HOME/.invoicer.yaml is used when present.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("db", defaultPath("invoicer.db"))
	v.SetDefault("invoices_dir", "invoices")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "invoices@example.com")

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(".invoicer")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// A missing default config file is fine.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return Config{
		DBPath:      v.GetString("db"),
		InvoicesDir: v.GetString("invoices_dir"),
		SMTP: mail.SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
		},
	}, nil
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".invoicer", name)
}
