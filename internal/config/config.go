package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Slack    SlackConfig
	FAQ      FAQConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// SlackConfig Slack配置
type SlackConfig struct {
	BotToken        string
	SigningSecret   string
	AppID           string
	AdminUserID     string
	ReviewChannelID string
}

// FAQConfig FAQ配置
type FAQConfig struct {
	// Backend: database（审核工作流）或 static（只读JSON文档）
	Backend string
	// ResolveMode: trigger（文本精确匹配）或 select（外部选择器按ID）
	ResolveMode     string
	StaticBaseURL   string
	FallbackContact string
}

// 后端与解析模式常量
const (
	BackendDatabase = "database"
	BackendStatic   = "static"

	ResolveModeTrigger = "trigger"
	ResolveModeSelect  = "select"
)

var globalConfig *Config

// Load 加载配置
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	setDefaults(v)

	// 环境变量
	v.SetEnvPrefix("FAQBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded")
	}
	return globalConfig
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.Slack.BotToken == "" {
		return fmt.Errorf("slack.botToken is required")
	}
	if c.Slack.SigningSecret == "" {
		return fmt.Errorf("slack.signingSecret is required")
	}
	switch c.FAQ.Backend {
	case BackendDatabase:
		if c.Slack.AdminUserID == "" {
			return fmt.Errorf("slack.adminUserID is required for the database backend")
		}
		if c.Slack.ReviewChannelID == "" {
			return fmt.Errorf("slack.reviewChannelID is required for the database backend")
		}
	case BackendStatic:
		if c.FAQ.StaticBaseURL == "" {
			return fmt.Errorf("faq.staticBaseUrl is required for the static backend")
		}
	default:
		return fmt.Errorf("unknown faq.backend %q", c.FAQ.Backend)
	}
	switch c.FAQ.ResolveMode {
	case ResolveModeTrigger, ResolveModeSelect:
	default:
		return fmt.Errorf("unknown faq.resolveMode %q", c.FAQ.ResolveMode)
	}
	return nil
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "faq-bot")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", true)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "faq_bot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxLifetime", 300)

	// FAQ
	v.SetDefault("faq.backend", BackendDatabase)
	v.SetDefault("faq.resolveMode", ResolveModeTrigger)
}
