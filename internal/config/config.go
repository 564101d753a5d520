package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
}

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetEnv() string
}

// APIConfig carries everything needed to build an eSignBase client.
type APIConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetGrantType() string
	GetUserName() string
	GetPassword() string
	GetScopes() string
	GetBaseURL() string
	GetTimeout() (time.Duration, error)
}

type mainConfig struct {
	EnvVars
	API
}

func New() Config {
	return mainConfig{}
}
