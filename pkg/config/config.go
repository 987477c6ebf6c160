package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	once   sync.Once
	config *Config
)

// Config 全局配置结构
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Club       ClubConfig       `mapstructure:"club"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Security   SecurityConfig   `mapstructure:"security"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig HTTP服务配置
type HTTPConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"readTimeout"`
	WriteTimeout int    `mapstructure:"writeTimeout"`
	BodyLimit    int    `mapstructure:"bodyLimit"`
	CorsOrigin   string `mapstructure:"corsOrigin"`
}

// Addr 获取监听地址
func (c *HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslMode"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	LogLevel     string `mapstructure:"logLevel"`
}

// DSN 生成数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
	case "sqlite":
		// 为空时使用内存数据库
		if c.Database == "" {
			return ":memory:"
		}
		return c.Database
	default:
		return ""
	}
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
	Mode     string `mapstructure:"mode"` // "standalone" 外部 Redis, "memory" 内存模式
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
	Expire int64  `mapstructure:"expire"` // 秒
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// ClubConfig 俱乐部配置
type ClubConfig struct {
	Name             string `mapstructure:"name"`
	Timezone         string `mapstructure:"timezone"`
	MembershipPrefix string `mapstructure:"membershipPrefix"`
	LowStockAlert    int    `mapstructure:"lowStockAlert"`
}

// PaginationConfig 分页配置
type PaginationConfig struct {
	DefaultLimit int `mapstructure:"defaultLimit"`
	MaxLimit     int `mapstructure:"maxLimit"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcryptCost"`
	RateLimit  int `mapstructure:"rateLimit"` // 每秒请求数，0 表示关闭
	RateBurst  int `mapstructure:"rateBurst"`
}

// Init 初始化配置
func Init(configPath string) error {
	var err error
	once.Do(func() {
		config, err = Load(configPath)
	})
	return err
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	// 读取环境变量
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 加载环境特定配置
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = v.GetString("app.env")
	}

	if configPath == "" && env != "" && env != "default" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.MergeInConfig(); err != nil {
			// 环境配置文件不存在不报错
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to merge env config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	resolveEnvVars(cfg)

	return cfg, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "countryclub")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.version", "v1.0.0")

	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 3000)
	v.SetDefault("server.http.readTimeout", 30)
	v.SetDefault("server.http.writeTimeout", 30)
	v.SetDefault("server.http.bodyLimit", 4*1024*1024)
	v.SetDefault("server.http.corsOrigin", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.database", "countryclub.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("redis.mode", "memory")
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.poolSize", 10)

	v.SetDefault("jwt.issuer", "countryclub")
	v.SetDefault("jwt.expire", 24*60*60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.filename", "./logs/app.log")
	v.SetDefault("log.maxSize", 10)
	v.SetDefault("log.maxBackups", 5)
	v.SetDefault("log.maxAge", 30)

	v.SetDefault("club.name", "Country Club Premium")
	v.SetDefault("club.timezone", "America/New_York")
	v.SetDefault("club.membershipPrefix", "MEM-")
	v.SetDefault("club.lowStockAlert", 10)

	v.SetDefault("pagination.defaultLimit", 10)
	v.SetDefault("pagination.maxLimit", 100)

	v.SetDefault("security.bcryptCost", 12)
	v.SetDefault("security.rateLimit", 0)
	v.SetDefault("security.rateBurst", 100)
}

// resolveEnvVars 解析环境变量占位符
func resolveEnvVars(cfg *Config) {
	cfg.Database.Host = resolveEnvVar(cfg.Database.Host)
	cfg.Database.Username = resolveEnvVar(cfg.Database.Username)
	cfg.Database.Password = resolveEnvVar(cfg.Database.Password)
	cfg.Database.Database = resolveEnvVar(cfg.Database.Database)
	cfg.Redis.Host = resolveEnvVar(cfg.Redis.Host)
	cfg.Redis.Password = resolveEnvVar(cfg.Redis.Password)
	cfg.JWT.Secret = resolveEnvVar(cfg.JWT.Secret)
}

// resolveEnvVar 解析单个环境变量
func resolveEnvVar(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envKey := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")
		if envValue := os.Getenv(envKey); envValue != "" {
			return envValue
		}
	}
	return value
}

// Get 获取配置实例
func Get() *Config {
	if config == nil {
		panic("config not initialized, call Init first")
	}
	return config
}

// IsProd 是否为生产环境
func (c *Config) IsProd() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}
