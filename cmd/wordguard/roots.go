package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fenilsonani/wordguard/internal/platform"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List the drives a scan without arguments would cover",
	RunE: func(cmd *cobra.Command, args []string) error {
		roots, err := platform.Roots(cmd.Context())
		if err != nil {
			return err
		}

		if len(roots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No local drives found.")
			return nil
		}
		for _, r := range roots {
			fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}
