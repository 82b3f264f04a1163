package config

// TelemetryConfig metric 與 trace 個別開關；
// 關掉時 provider 會退化成 no-op，程式碼不用分路
type TelemetryConfig struct {
	Metric struct {
		Enabled bool      `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
	} `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace struct {
		Enabled     bool   `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		EndpointUrl string `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl"`
	} `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}
