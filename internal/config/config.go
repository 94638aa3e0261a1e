package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Agent     AgentConfig     `mapstructure:"agent"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Mail      MailConfig      `mapstructure:"mail"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Retention RetentionConfig `mapstructure:"retention"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
}

type AgentConfig struct {
	Home     string `mapstructure:"home"`
	Hostname string `mapstructure:"hostname"`
	Debug    bool   `mapstructure:"debug"`
	Schedule string `mapstructure:"schedule"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type DatabaseConfig struct {
	User         string `mapstructure:"user"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	DefaultsFile string `mapstructure:"defaults_file"`
}

type MailConfig struct {
	Operator string `mapstructure:"operator"`
	Sender   string `mapstructure:"sender"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type RemoteConfig struct {
	Type     string `mapstructure:"type"`
	Host     string `mapstructure:"host"`
	BasePath string `mapstructure:"base_path"`

	// AWS S3
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type RetentionConfig struct {
	WindowMinutes int `mapstructure:"window_minutes"`
	MaxLogLines   int `mapstructure:"max_log_lines"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// Load reads the optional YAML config file and the BACKUP_* environment,
// environment winning over file values. Required values are validated here,
// before the config reaches any component.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("agent.home", "/var/lib/argos")
	v.SetDefault("agent.hostname", "")
	v.SetDefault("agent.debug", false)
	v.SetDefault("agent.schedule", "")
	v.SetDefault("agent.log_level", "info")
	v.SetDefault("agent.log_file", "")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.defaults_file", "")
	v.SetDefault("mail.operator", "")
	v.SetDefault("mail.sender", "")
	v.SetDefault("mail.smtp_host", "localhost")
	v.SetDefault("mail.smtp_port", 25)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("remote.type", "scp")
	v.SetDefault("remote.host", "")
	v.SetDefault("remote.base_path", "")
	v.SetDefault("remote.region", "")
	v.SetDefault("remote.bucket", "")
	v.SetDefault("remote.access_key", "")
	v.SetDefault("remote.secret_key", "")
	v.SetDefault("remote.prefix", "")
	v.SetDefault("retention.window_minutes", 43200) // 30 days
	v.SetDefault("retention.max_log_lines", 1000)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetEnvPrefix("BACKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.DefaultsFile == "" {
		cfg.Database.DefaultsFile = filepath.Join(cfg.ConfDir(), ".my.cnf")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Agent.Home == "" {
		return fmt.Errorf("agent.home is required")
	}
	if c.Mail.Operator == "" {
		return fmt.Errorf("mail.operator is required")
	}
	if c.Mail.Sender == "" {
		return fmt.Errorf("mail.sender is required")
	}
	if c.Retention.WindowMinutes <= 0 {
		return fmt.Errorf("retention.window_minutes must be positive")
	}
	if c.Retention.MaxLogLines <= 0 {
		return fmt.Errorf("retention.max_log_lines must be positive")
	}

	switch c.Remote.Type {
	case "scp":
		if c.Remote.Host == "" {
			return fmt.Errorf("remote.host is required for scp remotes")
		}
		if c.Remote.BasePath == "" {
			return fmt.Errorf("remote.base_path is required for scp remotes")
		}
	case "s3":
		if c.Remote.Bucket == "" {
			return fmt.Errorf("remote.bucket is required for s3 remotes")
		}
		if c.Remote.Region == "" {
			return fmt.Errorf("remote.region is required for s3 remotes")
		}
	default:
		return fmt.Errorf("remote.type must be scp or s3, got %q", c.Remote.Type)
	}

	return nil
}

func (c *Config) DumpsDir() string { return filepath.Join(c.Agent.Home, "dumps") }
func (c *Config) LogsDir() string  { return filepath.Join(c.Agent.Home, "logs") }
func (c *Config) ConfDir() string  { return filepath.Join(c.Agent.Home, "conf") }

func (c *Config) IdentityPath() string { return filepath.Join(c.Agent.Home, "uuid") }
func (c *Config) MainLogPath() string  { return filepath.Join(c.LogsDir(), "main.log") }
func (c *Config) ErrorLogPath() string { return filepath.Join(c.LogsDir(), "error.log") }
