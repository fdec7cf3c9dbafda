package main

import (
	"github.com/saylorsolutions/httpnotifier/config"
	flag "github.com/spf13/pflag"
	"time"
)

const flagConfig = "config"

func addConfigFlag(fs *flag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "Path to a TOML config file")
}

// loadConfig loads the file named by the config flag and the environment, then applies flags the user set explicitly.
// bind maps flag names to the setting each one overrides.
func loadConfig(fs *flag.FlagSet, bind func(cfg *config.Config) map[string]any) (config.Config, error) {
	path, _ := fs.GetString(flagConfig)
	cfg := config.Default()
	if len(path) > 0 {
		if err := cfg.DecodeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	for name, target := range bind(&cfg) {
		if !fs.Changed(name) {
			continue
		}
		switch target := target.(type) {
		case *string:
			*target, _ = fs.GetString(name)
		case *int:
			*target, _ = fs.GetInt(name)
		case *float64:
			*target, _ = fs.GetFloat64(name)
		case *time.Duration:
			*target, _ = fs.GetDuration(name)
		}
	}
	return cfg, cfg.Validate()
}
