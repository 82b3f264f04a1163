package config

type Payment struct {
	BaseURL string `mapstructure:"BASE_URL" json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `mapstructure:"API_KEY" json:"apiKey" yaml:"apiKey"`
	// 呼叫金流閘道的逾時毫秒數
	Timeout int64 `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
}
