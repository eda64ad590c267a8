package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
	Payment  PaymentConfig  `mapstructure:"payment"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"` // debug / release
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Driver string      `mapstructure:"driver"` // sqlite / postgres
	DSN    string      `mapstructure:"dsn"`
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 定义了会话认证相关的配置
type AuthConfig struct {
	// JWTSecret 是签发与校验会话Token所用的密钥
	JWTSecret string `mapstructure:"jwtSecret"`
	// DemoUserID 仅在非release模式下生效：
	// 当请求没有携带会话时，用该用户ID代替，以保证本地联调的可用性
	DemoUserID string `mapstructure:"demoUserId"`
}

// AIConfig 定义了AI文本生成服务商的配置
type AIConfig struct {
	BaseURL        string  `mapstructure:"baseUrl"`
	APIKey         string  `mapstructure:"apiKey"`
	Model          string  `mapstructure:"model"`
	Temperature    float64 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"maxTokens"`
	TimeoutSeconds int     `mapstructure:"timeoutSeconds"`
	MaxRetries     int     `mapstructure:"maxRetries"`
}

// PaymentConfig 定义了支付服务商的配置
type PaymentConfig struct {
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Razorpay RazorpayConfig `mapstructure:"razorpay"`
}

// StripeConfig 定义了Stripe的密钥与各档位对应的价格ID
type StripeConfig struct {
	SecretKey     string `mapstructure:"secretKey"`
	WebhookSecret string `mapstructure:"webhookSecret"`
	SuccessURL    string `mapstructure:"successUrl"`
	CancelURL     string `mapstructure:"cancelUrl"`
	// PriceIDs 是档位名(basic/premium/elite) -> Stripe Price ID 的映射
	PriceIDs map[string]string `mapstructure:"priceIds"`
}

// RazorpayConfig 定义了Razorpay Webhook验签所需的密钥
type RazorpayConfig struct {
	WebhookSecret string `mapstructure:"webhookSecret"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 允许通过环境变量覆盖配置，例如 AI_APIKEY / DATABASE_DSN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 5. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 6. 启动期校验：缺失的关键配置直接报错，而不是留到请求时静默失败
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}

// Validate 对配置做启动期校验，并为可选项填充默认值。
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	switch c.Database.Driver {
	case "", "sqlite":
		c.Database.Driver = "sqlite"
		if c.Database.DSN == "" {
			c.Database.DSN = "advisor.db"
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("配置错误: database.driver为postgres时必须提供database.dsn")
		}
	default:
		return fmt.Errorf("配置错误: 不支持的数据库驱动 %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("配置错误: 缺少auth.jwtSecret，无法签发会话Token")
	}
	if c.IsRelease() && c.Auth.DemoUserID != "" {
		return errors.New("配置错误: release模式下不允许配置auth.demoUserId")
	}

	// AI为可选能力：未配置密钥时所有AI路径自动走规则回退，
	// 但只配置了一半视为配置错误
	if c.AI.APIKey != "" {
		if c.AI.BaseURL == "" {
			c.AI.BaseURL = "https://api.openai.com"
		}
		if c.AI.Model == "" {
			return errors.New("配置错误: 提供了ai.apiKey但缺少ai.model")
		}
		if c.AI.TimeoutSeconds <= 0 {
			c.AI.TimeoutSeconds = 60
		}
		if c.AI.MaxRetries < 0 {
			c.AI.MaxRetries = 0
		}
		if c.AI.MaxTokens <= 0 {
			c.AI.MaxTokens = 1024
		}
	}

	// 支付同理：配置了SecretKey就必须配齐Webhook密钥
	if c.Payment.Stripe.SecretKey != "" && c.Payment.Stripe.WebhookSecret == "" {
		return errors.New("配置错误: 提供了payment.stripe.secretKey但缺少payment.stripe.webhookSecret")
	}

	return nil
}

// IsRelease 返回服务器是否运行在release模式
func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}
