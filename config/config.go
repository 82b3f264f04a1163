package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Auth      Auth            `mapstructure:"AUTH" json:"auth" yaml:"auth"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB   MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Payment   Payment         `mapstructure:"PAYMENT" json:"payment" yaml:"payment"`
	RateLimit RateLimit       `mapstructure:"RATE_LIMIT" json:"rateLimit" yaml:"rateLimit"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
}
