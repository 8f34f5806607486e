// Package config loads the typed configuration for the health check.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "HEALTHCHECK"

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the connection parameters of every probed dependency.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	LDAP      LDAPConfig      `mapstructure:"ldap"`
	Mail      MailConfig      `mapstructure:"mail"`
	Secondary SecondaryConfig `mapstructure:"secondary"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Log       LogConfig       `mapstructure:"log"`
}

type DatabaseConfig struct {
	Connection     string        `mapstructure:"connection"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Database       string        `mapstructure:"database"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	SSLMode        string        `mapstructure:"sslmode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Database,
	}
	if d.Username != "" {
		u.User = url.UserPassword(d.Username, d.Password)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

type LDAPConfig struct {
	Hosts    []string      `mapstructure:"hosts"`
	Port     int           `mapstructure:"port"`
	BaseDN   string        `mapstructure:"base_dn"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
	UseSSL   bool          `mapstructure:"use_ssl"`
	UseTLS   bool          `mapstructure:"use_tls"`
}

// Mail encryption modes.
const (
	EncryptionTLS      = "tls"
	EncryptionStartTLS = "starttls"
	EncryptionNone     = "none"
)

type MailConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	Encryption    string        `mapstructure:"encryption"` // tls, starttls, none
	FromAddress   string        `mapstructure:"from_address"`
	FromName      string        `mapstructure:"from_name"`
	Timeout       time.Duration `mapstructure:"timeout"`
	TestRecipient string        `mapstructure:"test_recipient"`
}

// SecondaryConfig describes the optional Oracle database.
type SecondaryConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"` // service name
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Configured reports whether host, database, username and password are all set.
func (s SecondaryConfig) Configured() bool {
	return s.Host != "" && s.Database != "" && s.Username != "" && s.Password != ""
}

type QueueConfig struct {
	Default  string        `mapstructure:"default"` // connection name: redis, sync
	Queue    string        `mapstructure:"queue"`
	RedisURL string        `mapstructure:"redis_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // console output on stderr
	File   string `mapstructure:"file"`   // rotated JSON log file, empty for stderr
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Nested keys use underscore:
// HEALTHCHECK_DATABASE_HOST, HEALTHCHECK_LDAP_BASE_DN, etc.
// The mail test recipient also honours the legacy APP_TESTMAIL variable.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("health-check")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/health-check")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("mail.test_recipient", EnvPrefix+"_MAIL_TEST_RECIPIENT", "APP_TESTMAIL"); err != nil {
		return nil, fmt.Errorf("binding environment: %w", err)
	}

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.LDAP.Hosts = compact(cfg.LDAP.Hosts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.connection", "pgsql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")
	v.SetDefault("database.connect_timeout", 5*time.Second)

	v.SetDefault("ldap.hosts", []string{})
	v.SetDefault("ldap.port", 389)
	v.SetDefault("ldap.base_dn", "")
	v.SetDefault("ldap.username", "")
	v.SetDefault("ldap.password", "")
	v.SetDefault("ldap.timeout", 5*time.Second)
	v.SetDefault("ldap.use_ssl", false)
	v.SetDefault("ldap.use_tls", false)

	v.SetDefault("mail.host", "localhost")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.encryption", EncryptionStartTLS)
	v.SetDefault("mail.from_address", "health-check@localhost")
	v.SetDefault("mail.from_name", "Health Check")
	v.SetDefault("mail.timeout", 10*time.Second)
	v.SetDefault("mail.test_recipient", "")

	v.SetDefault("secondary.host", "")
	v.SetDefault("secondary.port", 1521)
	v.SetDefault("secondary.database", "")
	v.SetDefault("secondary.username", "")
	v.SetDefault("secondary.password", "")

	v.SetDefault("queue.default", "redis")
	v.SetDefault("queue.queue", "default")
	v.SetDefault("queue.redis_url", "redis://localhost:6379/0")
	v.SetDefault("queue.timeout", 5*time.Second)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", true)
	v.SetDefault("log.file", "")
}

// Validate checks value ranges. Missing dependency settings are not errors:
// they are reported by the corresponding check.
func (c *Config) Validate() error {
	var problems []string

	ports := []struct {
		key  string
		port int
	}{
		{"database.port", c.Database.Port},
		{"ldap.port", c.LDAP.Port},
		{"mail.port", c.Mail.Port},
		{"secondary.port", c.Secondary.Port},
	}
	for _, p := range ports {
		if p.port < 1 || p.port > 65535 {
			problems = append(problems, fmt.Sprintf("%s must be between 1 and 65535, got %d", p.key, p.port))
		}
	}

	timeouts := []struct {
		key string
		d   time.Duration
	}{
		{"database.connect_timeout", c.Database.ConnectTimeout},
		{"ldap.timeout", c.LDAP.Timeout},
		{"mail.timeout", c.Mail.Timeout},
		{"queue.timeout", c.Queue.Timeout},
	}
	for _, t := range timeouts {
		if t.d < 0 {
			problems = append(problems, fmt.Sprintf("%s must not be negative, got %s", t.key, t.d))
		}
	}

	switch c.Mail.Encryption {
	case EncryptionTLS, EncryptionStartTLS, EncryptionNone:
	default:
		problems = append(problems, fmt.Sprintf("mail.encryption must be one of tls, starttls, none, got %q", c.Mail.Encryption))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook reads unitless timeouts ("5", 5, 2.5) as seconds.
// Values with a unit ("500ms") are left to StringToTimeDurationHookFunc.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != durationType || from == durationType {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case uint64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return time.Duration(n * float64(time.Second)), nil
			}
		}
		return data, nil
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
