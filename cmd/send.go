package cmd

import (
	"fmt"

	sendservice "github.com/RobsonDevCode/growmate-probe/internal/services/sendService"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "post the payload file to the advisory endpoint",
	Long: `send posts the payload file verbatim with Content-Type: application/json
		   and writes the response body to stdout. Non 2xx responses are printed, not treated as errors.`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

const (
	PayloadFlag = "payload"
	PrettyFlag  = "pretty"
	ExportFlag  = "export"
	PickFlag    = "pick"
)

func runSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	options := sendservice.SendOptions{
		PayloadPath: payloadPath(cmd),
	}
	options.Target, _ = cmd.Flags().GetString(TargetFlag)
	options.Url, _ = cmd.Flags().GetString(UrlFlag)
	options.Pretty, _ = cmd.Flags().GetBool(PrettyFlag)
	options.Export, _ = cmd.Flags().GetBool(ExportFlag)

	if pick, _ := cmd.Flags().GetBool(PickFlag); pick {
		selection, err := deps.TargetSelection.Select(".")
		if err != nil {
			return fmt.Errorf("error selecting payload: %w", err)
		}
		options.PayloadPath = selection.PayloadPath
		options.Target = selection.Target
	}

	return deps.SendService.Send(ctx, options)
}

func payloadPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString(PayloadFlag); path != "" {
		return path
	}
	return deps.Config.PayloadFile
}

func addSendFlags(c *cobra.Command) {
	c.Flags().StringP(PayloadFlag, "p", "", "Payload file to send, defaults to test_payload.json")
	c.Flags().Bool(PrettyFlag, false, "Render the advisory as tables instead of the raw body")
	c.Flags().Bool(ExportFlag, false, "Export the advisory to an excel workbook under ./export")
	c.Flags().Bool(PickFlag, false, "Pick the payload file and target interactively")
}

func init() {
	addSendFlags(sendCmd)

	rootCmd.AddCommand(sendCmd)
}
