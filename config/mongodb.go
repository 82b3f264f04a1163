package config

// MongoDB 角色、資產與請求三個 collection 都在同一顆庫
type MongoDB struct {
	URI     string `mapstructure:"URI" json:"uri" yaml:"uri"`
	Options string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
}
