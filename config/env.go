package config

import (
	"os"
	"strings"
)

// EnvPrefix is prepended to the name of every environment variable read by [Config.ApplyEnv].
const EnvPrefix = "HTTPNOTIFIER_"

const (
	EnvAddr            = EnvPrefix + "ADDR"
	EnvShutdownTimeout = EnvPrefix + "SHUTDOWN_TIMEOUT"
	EnvURL             = EnvPrefix + "URL"
	EnvAPIKey          = EnvPrefix + "API_KEY"
	EnvMaxTries        = EnvPrefix + "MAX_TRIES"
	EnvRetryDelay      = EnvPrefix + "RETRY_DELAY"
	EnvBackoffFactor   = EnvPrefix + "BACKOFF_FACTOR"
	EnvLogLevel        = EnvPrefix + "LOG_LEVEL"
	EnvLogFile         = EnvPrefix + "LOG_FILE"
)

type environment map[string]string

func getEnv() environment {
	envMap := environment{}
	for _, entry := range os.Environ() {
		key, val, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		envMap[strings.ToLower(key)] = val
	}
	return envMap
}

// lookup compares keys case-insensitive.
// A variable that is set to only whitespace is treated as unset.
func (e environment) lookup(key string) (string, bool) {
	val, ok := e[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	val = strings.TrimSpace(val)
	return val, len(val) > 0
}
