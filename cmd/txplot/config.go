package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".txplot.yaml"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage txplot configuration",
		Long: `Show, get, or set default flag values. Config is stored in ~/.txplot.yaml.
Keys are flag names: ` + strings.Join(configKeys, ", ") + ".",
		Example: `  txplot config                        # show all config
  txplot config set format svg         # write SVG by default
  txplot config set figsize 12,4       # default figure size
  txplot config get format             # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func isConfigKey(key string) bool {
	for _, k := range configKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// configSettings returns only what was set in the config file or with
// config set, not flag defaults.
func configSettings() map[string]any {
	settings := make(map[string]any)
	for _, key := range configKeys {
		if viper.InConfig(key) {
			settings[strings.ToLower(key)] = viper.Get(key)
		}
	}
	return settings
}

func runConfigShow(w io.Writer) error {
	settings := configSettings()
	if len(settings) == 0 {
		fmt.Fprintf(w, "# No configuration set. Config file: ~/%s\n", defaultConfigName)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	if !isConfigKey(key) {
		return usageErrorf("unknown config key %q: expected one of %s", key, strings.Join(configKeys, ", "))
	}

	// Parse boolean-like values
	var parsed any = value
	switch value {
	case "true", "yes", "on":
		parsed = true
	case "false", "no", "off":
		parsed = false
	}

	// Only keys already in the file plus this one are written, not defaults.
	settings := configSettings()
	viper.Set(key, parsed)
	settings[strings.ToLower(key)] = parsed

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, defaultConfigName)
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(cfgFile, out, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	if !isConfigKey(key) {
		return usageErrorf("unknown config key %q", key)
	}
	fmt.Fprintln(w, viper.Get(key))
	return nil
}
