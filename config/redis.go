package config

// Redis 只承載速率限制的計數窗格，掉了也只是限流暫時失效
type Redis struct {
	Host     string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port     int    `mapstructure:"PORT" json:"port" yaml:"port"`
	Password string `mapstructure:"PASSWORD" json:"password" yaml:"password"`
	DB       int    `mapstructure:"DB" json:"db" yaml:"db"`
}
