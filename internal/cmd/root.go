// Package cmd implements the hwspin-sim command line.
package cmd

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/llxisdsh/hwspin/internal/config"
	"github.com/llxisdsh/hwspin/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "hwspin-sim",
	Short: "Exercise hardware spinlock mutexes on an emulated RP2040 bank",
	Long: `hwspin-sim runs multicore scenarios against an emulated RP2040
spinlock bank. Goroutines stand in for cores and contend for a single
hwspin.Mutex, so the guarantees of the mutex can be checked on a workstation
before flashing firmware.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file (default is ./hwspin.yaml or $HOME/.config/hwspin/hwspin.yaml)")
	flags.String("log-level", defaults.Logging.Level, "log level: debug, info, warn, error")
	flags.String("log-format", defaults.Logging.Format, "log format: text, json")
	flags.Int("lock", defaults.Sim.Lock, "hardware spinlock number (0-31)")
	flags.Int("cores", defaults.Sim.Cores, "number of emulated cores")
	flags.Int("iterations", defaults.Sim.Iterations, "lock/increment/unlock rounds per core")
	flags.String("mode", defaults.Sim.Mode, "acquisition mode: lock, trylock")
	flags.Duration("deadline", defaults.Sim.Deadline, "bound on each acquisition in trylock mode")
	flags.Duration("hold", defaults.Sim.Hold, "how long the contending holder keeps the lock")

	bindFlags(flags)
}

// bindFlags binds the persistent flags to their viper keys.
func bindFlags(flags *pflag.FlagSet) {
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("sim.lock", flags.Lookup("lock"))
	_ = viper.BindPFlag("sim.cores", flags.Lookup("cores"))
	_ = viper.BindPFlag("sim.iterations", flags.Lookup("iterations"))
	_ = viper.BindPFlag("sim.mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("sim.deadline", flags.Lookup("deadline"))
	_ = viper.BindPFlag("sim.hold", flags.Lookup("hold"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hwspin")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/hwspin")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HWSPIN")
	// e.g., HWSPIN_SIM_LOCK for sim.lock
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// setup loads the configuration and builds the logger for a subcommand.
func setup(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, log, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
