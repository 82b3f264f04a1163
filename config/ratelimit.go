package config

type RateLimit struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// 視窗秒數
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"windowSeconds" yaml:"windowSeconds"`
	// 視窗內可提交的請求數
	Limit int `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
}
