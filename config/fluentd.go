package config

// Fluentd 稽核日誌轉發。TagPrefix 接在 request / response tag 前，
// 同一套 fluentd 可以收多個環境。
type Fluentd struct {
	Host      string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port      int    `mapstructure:"PORT" json:"port" yaml:"port"`
	TagPrefix string `mapstructure:"TAG_PREFIX" json:"tagPrefix" yaml:"tagPrefix"`
	Timeout   int64  `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
}
