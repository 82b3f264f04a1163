package config

type Auth struct {
	// Secret Key 用於簽發 access token
	SecretKey string `mapstructure:"SECRET_KEY" json:"secret_key" yaml:"secret_key"`
	// token 有效秒數，預設 3600
	TokenTTL int64 `mapstructure:"TOKEN_TTL" json:"token_ttl" yaml:"token_ttl"`
}
