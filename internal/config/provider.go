package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// EnvPrefix is prepended to every environment variable read by viper
const EnvPrefix = "SAFE"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	workDir := v.GetString("work_dir")
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	output, err := ParseOutputFormat(v.GetString("output"))
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		WorkDir:               workDir,
		Debug:                 v.GetBool("debug"),
		NonInteractive:        v.GetBool("non_interactive"),
		Yes:                   v.GetBool("yes"),
		Output:                output,
		Timeout:               v.GetDuration("timeout"),
		RateLimit:             v.GetFloat64("rate_limit"),
		PrivateKey:            os.ExpandEnv(v.GetString("private_key")),
		TransactionServiceURL: v.GetString("transaction_service_url"),
		BlockscoutURL:         v.GetString("blockscout_url"),
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must not be negative: %v", cfg.RateLimit)
	}

	endpoints, err := loadEndpoints(workDir)
	if err != nil {
		return nil, err
	}
	cfg.Endpoints = endpoints

	// Resolve network if specified
	if networkName := v.GetString("network"); networkName != "" {
		net, err := network.Parse(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = net
	}

	return cfg, nil
}

// SetupViper creates and configures a viper instance.
// .env files in workDir are loaded first so they can feed SAFE_* variables.
func SetupViper(workDir string, cmd *cobra.Command) *viper.Viper {
	loadEnvFiles(workDir)

	v := viper.New()

	// Set up config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workDir, ".safe-eth"))

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("yes", false)
	v.SetDefault("output", string(OutputTable))
	v.SetDefault("rate_limit", 0)
	v.SetDefault("work_dir", workDir)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags(v, cmd.Flags())
	}

	return v
}

// bindFlags binds every flag under its snake_case key so that
// --non-interactive and SAFE_NON_INTERACTIVE land on the same setting
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})
}
