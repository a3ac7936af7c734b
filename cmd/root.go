package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	probeerrors "github.com/RobsonDevCode/growmate-probe/internal/probeErrors"
	benchmarkservice "github.com/RobsonDevCode/growmate-probe/internal/services/benchmarkService"
	scenarioservice "github.com/RobsonDevCode/growmate-probe/internal/services/scenarioService"
	sendservice "github.com/RobsonDevCode/growmate-probe/internal/services/sendService"
	targetselectionservice "github.com/RobsonDevCode/growmate-probe/internal/services/targetSelectionService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	TargetFlag  = "target"
	UrlFlag     = "url"
	VerboseFlag = "verbose"
)

type Dependencies struct {
	Config          *configuration.Config
	ClientProvider  clients.AdvisoryClientProvider
	SendService     sendservice.SendService
	ScenarioService scenarioservice.ScenarioService
	BenchService    benchmarkservice.BenchmarkService
	TargetSelection targetselectionservice.TargetSelectionService
	Logger          *zap.Logger
	LogLevel        zap.AtomicLevel
}

var deps Dependencies

var rootCmd = &cobra.Command{
	Use:   "growmate-probe",
	Short: "smoke test the advisory api",
	Long: `growmate-probe posts a json payload to the advisory api and prints the response.

		   With no arguments it sends test_payload.json to http://127.0.0.1:5000/api/advisory,
		   exactly like the curl smoke test it replaces.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSend,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool(VerboseFlag); verbose {
			deps.LogLevel.SetLevel(zapcore.DebugLevel)
		}
	},
}

// cant DI directly into the commands so we use a setter
func SetDependencies(dependencies Dependencies) {
	deps = dependencies
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx)
	stop()

	os.Exit(code)
}

// execute flushes the logger before returning, os.Exit skips deferred calls.
func execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if deps.Logger != nil {
		_ = deps.Logger.Sync()
	}

	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "%s\n", color.RedString("growmate-probe: %s", err.Error()))
		return probeerrors.ExitCode(err)
	}

	return exitcodes.Success
}

func init() {
	rootCmd.PersistentFlags().StringP(TargetFlag, "t", "", "Named target from configuration, defaults to the active target")
	rootCmd.PersistentFlags().StringP(UrlFlag, "u", "", "Base url of the advisory api, overrides --target")
	rootCmd.PersistentFlags().BoolP(VerboseFlag, "v", false, "Debug logging to stderr")

	addSendFlags(rootCmd)
}
