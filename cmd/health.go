package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "check the advisory api health endpoint",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString(TargetFlag)
	overrideUrl, _ := cmd.Flags().GetString(UrlFlag)

	client, err := deps.ClientProvider.ForTarget(target, overrideUrl)
	if err != nil {
		return err
	}

	health, err := client.CheckHealth(cmd.Context())
	if err != nil {
		return err
	}

	if !health.IsHealthy() {
		return fmt.Errorf("%s reported status %q", health.Service, health.Status)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("healthy"), health.Service)
	return nil
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
