package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/wordguard/internal/config"
	"github.com/fenilsonani/wordguard/internal/progress"
)

var initConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the configuration in effect. With --init, writes the defaults to the config file if it does not exist yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfgPath := configPath
		if cfgPath == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			cfgPath = p
		}

		if initConfig {
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				if configPath == "" {
					if cfgPath, err = config.EnsureConfigExists(); err != nil {
						return err
					}
				} else if err := config.Save(config.GetDefault(), cfgPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Created %s\n", cfgPath)
			}
		}

		fmt.Fprintf(out, "Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
			fmt.Fprintln(out, "Run 'wordguard config --init' to create it.")
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintf(out, "\n%s", data)

		if n := cfg.MaxFileSizeBytes(); n > 0 {
			fmt.Fprintf(out, "\nFiles larger than %s are skipped.\n", progress.FormatBytes(n))
		} else {
			fmt.Fprintln(out, "\nNo file size limit.")
		}

		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&initConfig, "init", false, "create the config file with defaults")
}
