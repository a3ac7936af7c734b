package main

import (
	"fmt"
	"os"

	"github.com/RobsonDevCode/growmate-probe/cmd"
	cache "github.com/RobsonDevCode/growmate-probe/internal/caching"
	client "github.com/RobsonDevCode/growmate-probe/internal/clients"
	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	"github.com/RobsonDevCode/growmate-probe/internal/logging"
	benchmarkservice "github.com/RobsonDevCode/growmate-probe/internal/services/benchmarkService"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
	scenarioservice "github.com/RobsonDevCode/growmate-probe/internal/services/scenarioService"
	sendservice "github.com/RobsonDevCode/growmate-probe/internal/services/sendService"
	targetselectionservice "github.com/RobsonDevCode/growmate-probe/internal/services/targetSelectionService"
)

func main() {
	config, err := configuration.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error starting command line: %s\n", err.Error())
		os.Exit(exitcodes.Failure)
	}

	logger, logLevel, err := logging.New(config.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error starting command line: %s\n", err.Error())
		os.Exit(exitcodes.Failure)
	}

	cacheInstance := cache.NewCache(cache.DefaultTTL)
	payloadReader := payloadreaderservice.NewPayloadReader(cacheInstance)
	clientProvider := client.NewClientProvider(config.AdvisoryClientSettings, logger)

	sendService := sendservice.NewSendProcessor(clientProvider, payloadReader, os.Stdout, os.Stderr, logger)
	scenarioService := scenarioservice.NewScenarioRunner(clientProvider, logger)
	benchService := benchmarkservice.NewBenchmarkRunner(clientProvider, payloadReader, logger)
	targetSelection := targetselectionservice.NewTargetSelection(clientProvider, payloadReader, nil)

	// cant DI directly into the command so we use a setter
	cmd.SetDependencies(cmd.Dependencies{
		Config:          config,
		ClientProvider:  clientProvider,
		SendService:     sendService,
		ScenarioService: scenarioService,
		BenchService:    benchService,
		TargetSelection: targetSelection,
		Logger:          logger,
		LogLevel:        logLevel,
	})
	cmd.Execute()
}
