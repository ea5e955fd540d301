package config

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
	// Session token lifetime in minutes
	TokenTTLMin int `yaml:"token_ttl_min" json:"token_ttl_min"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	// Operator mailbox receiving order notifications
	OrderNotifyTo string `yaml:"order_notify_to" json:"order_notify_to"`
}

type PaymentConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	GatewayURL  string `yaml:"gateway_url" json:"gateway_url"`
	MerchantKey string `yaml:"merchant_key" json:"merchant_key"`
	TimeoutSec  int    `yaml:"timeout_sec" json:"timeout_sec"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Smtp     SmtpConfig    `yaml:"smtp" json:"smtp"`
	Payment  PaymentConfig `yaml:"payment" json:"payment"`
	Logger   LoggerConfig  `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "VelourLuxe",
		Location: "America/New_York",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        1816,
		JwtSecret:   "9b6bdb2c-vlux-secret",
		TokenTTLMin: 720,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "storefront",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Smtp: SmtpConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "orders@velourluxe.example",
	},
	Payment: PaymentConfig{
		Enabled:    false,
		TimeoutSec: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetMediaDir() string {
	return path.Join(c.System.Workdir, "media")
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "storefront.yml"
	}
	cfg := new(AppConfig)
	if data, err := os.ReadFile(cfile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			cfg = DefaultAppConfig
		}
	} else {
		cfg = DefaultAppConfig
	}

	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("STOREFRONT_DB_HOST", &cfg.Database.Host)
	setEnvValue("STOREFRONT_DB_NAME", &cfg.Database.Name)
	setEnvValue("STOREFRONT_DB_USER", &cfg.Database.User)
	setEnvValue("STOREFRONT_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("STOREFRONT_WEB_JWT_SECRET", &cfg.Web.JwtSecret)
	setEnvValue("STOREFRONT_SMTP_HOST", &cfg.Smtp.Host)
	setEnvValue("STOREFRONT_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("STOREFRONT_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("STOREFRONT_PAYMENT_GATEWAY_URL", &cfg.Payment.GatewayURL)
	setEnvValue("STOREFRONT_PAYMENT_MERCHANT_KEY", &cfg.Payment.MerchantKey)
	return cfg
}
