package cmd

import (
	"fmt"

	tablewriterservice "github.com/RobsonDevCode/growmate-probe/internal/cmdLineWriters/tablewriter"
	scenarioservice "github.com/RobsonDevCode/growmate-probe/internal/services/scenarioService"
	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "post regional scenarios and compare the derived soil profiles",
	Long: `scenarios posts a catalogue of field requests across Udupi district and the api's
		   validation cases, then reports which responses match the expected profile.

		   Use --file to replace the built in catalogue with a yaml one.`,
	Args: cobra.NoArgs,
	RunE: runScenarios,
}

const (
	FileFlag        = "file"
	ConcurrencyFlag = "concurrency"
)

func runScenarios(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString(FileFlag)

	scenarios := scenarioservice.BuiltinScenarios()
	if file != "" {
		loaded, err := scenarioservice.LoadScenarios(file)
		if err != nil {
			return err
		}
		scenarios = loaded
	}

	options := scenarioservice.RunOptions{}
	options.Target, _ = cmd.Flags().GetString(TargetFlag)
	options.Url, _ = cmd.Flags().GetString(UrlFlag)
	options.Concurrency, _ = cmd.Flags().GetInt(ConcurrencyFlag)

	results, err := deps.ScenarioService.Run(cmd.Context(), scenarios, options)
	if err != nil {
		return err
	}

	tablewriterservice.DisplayScenarioTable(cmd.OutOrStdout(), results)

	failed := 0
	for _, result := range results {
		if !result.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios did not match", failed, len(results))
	}

	return nil
}

func init() {
	scenariosCmd.Flags().StringP(FileFlag, "f", "", "Yaml scenario catalogue to run instead of the built in one")
	scenariosCmd.Flags().IntP(ConcurrencyFlag, "c", scenarioservice.DefaultConcurrency, "Scenarios in flight at once")

	rootCmd.AddCommand(scenariosCmd)
}
