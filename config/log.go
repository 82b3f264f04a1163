package config

type Log struct {
	// zap 輸出層級 debug/info/warn/error
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
}
