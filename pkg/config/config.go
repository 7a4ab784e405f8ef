package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Signature is the contact block rendered under every notification.
type Signature struct {
	Name  string `mapstructure:"name"`
	Role  string `mapstructure:"role"`
	Email string `mapstructure:"email"`
	Phone string `mapstructure:"phone"`
}

// Server is one mail endpoint.
type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Mail holds the operator account used for retrieval (IMAP) and
// submission (SMTP).
type Mail struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	IMAP     Server `mapstructure:"imap"`
	SMTP     Server `mapstructure:"smtp"`
}

type Config struct {
	Organization string    `mapstructure:"organization"`
	Signature    Signature `mapstructure:"signature"`
	Mail         Mail      `mapstructure:"mail"`
}

// Build loads the JSON configuration file, binds any matching
// command-line flags on top, and applies .env credential overrides so
// the account password can stay out of the config file.
func Build(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}
	if user := os.Getenv("EMAIL_USER"); user != "" {
		cfg.Mail.User = user
	}
	if password := os.Getenv("EMAIL_PASSWORD"); password != "" {
		cfg.Mail.Password = password
	}

	return &cfg, nil
}

// ValidateMail checks that everything the send phase needs is present.
func (c *Config) ValidateMail() error {
	switch {
	case c.Mail.User == "":
		return fmt.Errorf("mail account user is not configured")
	case c.Mail.Password == "":
		return fmt.Errorf("mail account password is not configured")
	case c.Mail.IMAP.Host == "" || c.Mail.IMAP.Port == 0:
		return fmt.Errorf("imap server is not configured")
	case c.Mail.SMTP.Host == "" || c.Mail.SMTP.Port == 0:
		return fmt.Errorf("smtp server is not configured")
	}
	return nil
}
