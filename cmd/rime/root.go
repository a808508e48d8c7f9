package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nihei9/rime/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rime",
	Short: "Validate regular expression patterns",
	Long: `rime provides three features:
- Checks the syntax of patterns and points at the first violation.
- Runs test case files describing well-formed and malformed patterns.
- Prints the matches a pattern finds in a text.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

const (
	keyIgnoreCase = "ignore-case"
	keyMultiline  = "multiline"
	keyTimeout    = "timeout"
)

// config holds the matching options. Flags take precedence over the RIME_ environment variables, and the
// environment variables take precedence over the config file.
var config = viper.New()

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file path (YAML, TOML, or JSON)")
	flags.BoolP(keyIgnoreCase, "i", false, "match letters case-insensitively")
	flags.BoolP(keyMultiline, "m", false, "make ^ and $ match at line boundaries")
	flags.Duration(keyTimeout, 0, "abort a match that runs longer than this duration (0 means no limit)")
	bindFlags(flags, keyIgnoreCase, keyMultiline, keyTimeout)
	config.SetEnvPrefix("RIME")
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()
}

func bindFlags(flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		_ = config.BindPFlag(key, flags.Lookup(key))
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	config.SetConfigFile(path)
	err = config.ReadInConfig()
	if err != nil {
		return fmt.Errorf("Cannot read the config file %s: %w", path, err)
	}
	return nil
}

func compileOptions() []engine.CompileOption {
	var opts []engine.CompileOption
	if config.GetBool(keyIgnoreCase) {
		opts = append(opts, engine.IgnoreCase())
	}
	if config.GetBool(keyMultiline) {
		opts = append(opts, engine.Multiline())
	}
	if d := config.GetDuration(keyTimeout); d > 0 {
		opts = append(opts, engine.MatchTimeout(d))
	}
	return opts
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
