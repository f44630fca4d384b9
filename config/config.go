package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database   DatabaseConfigs   `toml:"database"`
	ApiServer  APIServerConfigs  `toml:"api_server"`
	Auth       AuthConfigs       `toml:"auth"`
	Redis      RedisConfigs      `toml:"redis"`
	Kafka      KafkaConfigs      `toml:"kafka"`
	Twitter    TwitterConfigs    `toml:"twitter"`
	Classifier ClassifierConfigs `toml:"classifier"`
	Marketing  MarketingConfigs  `toml:"marketing"`
	Rewards    RewardsConfigs    `toml:"rewards"`
}

func (c Configs) IsProduction() bool {
	return c.Env == "production"
}

type DatabaseConfigs struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	ServerConfigs
	AllowOrigins []string `toml:"allow_origins"`
	MaxLimit     int      `toml:"max_limit"`
	DefaultLimit int      `toml:"default_limit"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

type TwitterConfigs struct {
	// Mode is one of "api", "scraper" or empty. An empty mode is only allowed
	// outside production and serves synthetic posts.
	Mode           string        `toml:"mode"`
	APIEndpoints   []string      `toml:"api_endpoints"`
	AppAccessToken string        `toml:"app_access_token"`
	Timeout        time.Duration `toml:"timeout"`
	ProfileTTL     time.Duration `toml:"profile_ttl"`
}

func (c TwitterConfigs) Configured() bool {
	switch c.Mode {
	case "api":
		return len(c.APIEndpoints) > 0 && c.AppAccessToken != ""
	case "scraper":
		return true
	}

	return false
}

type ClassifierConfigs struct {
	APIEndpoints []string      `toml:"api_endpoints"`
	APIKey       string        `toml:"api_key"`
	Model        string        `toml:"model"`
	Timeout      time.Duration `toml:"timeout"`
}

type MarketingConfigs struct {
	APIEndpoints []string `toml:"api_endpoints"`
	APIKey       string   `toml:"api_key"`
	Topic        string   `toml:"topic"`
}

type RewardsConfigs struct {
	BrandTokens       []string `toml:"brand_tokens"`
	VerificationBonus float64  `toml:"verification_bonus"`
	RecentSubmissions int      `toml:"recent_submissions"`
}
