package cmd

import (
	"fmt"

	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	setupservice "github.com/RobsonDevCode/growmate-probe/internal/services/setupService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var setUpCmd = &cobra.Command{
	Use:   "setup",
	Short: "write a default configuration and sample payload",
	Long: `setup writes configuration/configuration.yaml and test_payload.json in the current directory.
		   Existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runSetUp,
}

const RemoteFlag = "remote"

func runSetUp(cmd *cobra.Command, args []string) error {
	remoteUrl, _ := cmd.Flags().GetString(RemoteFlag)
	payload, _ := cmd.Flags().GetString(PayloadFlag)
	if payload == "" {
		payload = configuration.DefaultPayloadFile
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, "\n Setting up probe...")

	result, err := setupservice.CreateSetupFiles(configuration.FilePath, payload, remoteUrl)
	if err != nil {
		return err
	}

	for _, path := range result.Created {
		fmt.Fprintf(out, "\n created %s", path)
	}
	for _, path := range result.Skipped {
		fmt.Fprintf(out, "\n %s", color.YellowString("kept existing %s", path))
	}

	fmt.Fprint(out, color.GreenString("\n Probe set up, run growmate-probe to send the payload!\n"))
	return nil
}

func init() {
	setUpCmd.Flags().StringP(RemoteFlag, "r", "", "Base url of the deployed advisory api, stored as the remote target")
	setUpCmd.Flags().StringP(PayloadFlag, "p", "", "Where to write the sample payload")

	rootCmd.AddCommand(setUpCmd)
}
