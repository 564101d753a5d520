package config

import (
	"os"
)

const (
	appNameVar  = "APP_NAME"
	logLevelVar = "LOG_LEVEL"
	envVar      = "ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "eSignBase")
}

// GetLogLevel returns a zerolog level name such as "debug" or "info".
func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
