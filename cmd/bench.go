package cmd

import (
	"fmt"

	tablewriterservice "github.com/RobsonDevCode/growmate-probe/internal/cmdLineWriters/tablewriter"
	benchmarkservice "github.com/RobsonDevCode/growmate-probe/internal/services/benchmarkService"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "measure advisory latency over repeated requests",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

const (
	RequestsFlag = "requests"
	WarmupFlag   = "warmup"
)

func runBench(cmd *cobra.Command, args []string) error {
	options := benchmarkservice.BenchmarkOptions{
		PayloadPath: payloadPath(cmd),
	}
	options.Target, _ = cmd.Flags().GetString(TargetFlag)
	options.Url, _ = cmd.Flags().GetString(UrlFlag)
	options.Requests, _ = cmd.Flags().GetInt(RequestsFlag)
	options.Warmup, _ = cmd.Flags().GetInt(WarmupFlag)
	options.Concurrency, _ = cmd.Flags().GetInt(ConcurrencyFlag)
	options = options.WithDefaults()

	fmt.Fprintf(cmd.OutOrStdout(), "Benchmarking %d requests...\n", options.Requests)

	report, err := deps.BenchService.Run(cmd.Context(), options)
	if err != nil {
		return err
	}

	tablewriterservice.DisplayBenchmarkTable(cmd.OutOrStdout(), report)
	return nil
}

func init() {
	benchCmd.Flags().StringP(PayloadFlag, "p", "", "Payload file to send, defaults to test_payload.json")
	benchCmd.Flags().IntP(RequestsFlag, "n", benchmarkservice.DefaultRequests, "Measured requests")
	benchCmd.Flags().Int(WarmupFlag, benchmarkservice.DefaultWarmup, "Unmeasured requests sent first")
	benchCmd.Flags().IntP(ConcurrencyFlag, "c", 1, "Requests in flight at once")

	rootCmd.AddCommand(benchCmd)
}
