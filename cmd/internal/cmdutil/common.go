package cmdutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/internal/config"
	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/storage"
)

// Common holds the persistent flags both tools share.
type Common struct {
	OutDir    string
	LogLevel  string
	LogFormat string
	EnvFile   string
}

// Bind registers the shared persistent flags on root.
func (c *Common) Bind(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&c.OutDir, "out-dir", "", "Output directory (default ./<dir> under the working directory)")
	pf.StringVar(&c.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&c.LogFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&c.EnvFile, "env-file", "", "Dotenv file to load (default .env)")
}

// Resolve loads the dotenv file and the environment, fills every flag the
// user did not set, and installs the logger. Flags win over the environment,
// which wins over defaults; dir is the default output directory name.
func (c *Common) Resolve(cmd *cobra.Command, dir string) (config.Env, error) {
	if err := config.LoadDotEnv(c.EnvFile); err != nil {
		return config.Env{}, err
	}
	env := config.LoadEnv()

	c.OutDir = Pick(cmd, "out-dir", c.OutDir, env.OutDir)
	if c.OutDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Env{}, err
		}
		c.OutDir = filepath.Join(wd, dir)
	}
	c.LogLevel = Pick(cmd, "log-level", c.LogLevel, env.LogLevel)
	c.LogFormat = Pick(cmd, "log-format", c.LogFormat, env.LogFormat)

	logging.Setup(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat)
	return env, nil
}

// Pick returns the flag value when the flag was set on the command line,
// otherwise the environment value.
func Pick(cmd *cobra.Command, name, flagValue, envValue string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return flagValue
	}
	return envValue
}

// OpenStorage connects to the configured bucket, or returns nil when
// publishing is off.
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	st, err := storage.NewMinIO(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return st, nil
}
