package redis

import (
	"strconv"

	"github.com/spf13/viper"
)

// Config 客户端配置。零值字段在MakeClient时落到默认值
type Config struct {
	Host     string `mapstructure:"host"`     // 服务端地址
	Port     int    `mapstructure:"port"`     // 端口
	Encoding string `mapstructure:"encoding"` // bulk转string所用的文本编码
	Binary   bool   `mapstructure:"binary"`   // 保留项，开启时仅打警告
	Address  string `mapstructure:"address"`  // pubsub通知地址的前缀

	LogLevel string `mapstructure:"log-level"`
	Metrics  bool   `mapstructure:"metrics"`
}

func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     6379,
		Encoding: "UTF-8",
		Binary:   false,
		Address:  "io.vertx.mod-redis",
		LogLevel: "info",
	}
}

// LoadConfig 从配置文件与环境变量（REDIS_前缀）加载，缺省项用默认值补齐
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("host", def.Host)
	v.SetDefault("port", def.Port)
	v.SetDefault("encoding", def.Encoding)
	v.SetDefault("binary", def.Binary)
	v.SetDefault("address", def.Address)
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("metrics", false)
	v.SetEnvPrefix("redis")
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withDefaults 补齐零值字段
func (cfg *Config) withDefaults() *Config {
	def := DefaultConfig()
	out := *cfg
	if out.Host == "" {
		out.Host = def.Host
	}
	if out.Port == 0 {
		out.Port = def.Port
	}
	if out.Encoding == "" {
		out.Encoding = def.Encoding
	}
	if out.Address == "" {
		out.Address = def.Address
	}
	if out.LogLevel == "" {
		out.LogLevel = def.LogLevel
	}
	return &out
}

// Addr host:port
func (cfg *Config) Addr() string {
	return cfg.Host + ":" + strconv.Itoa(cfg.Port)
}
