package scenarioservice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	"github.com/RobsonDevCode/growmate-probe/internal/clients/models"
	"github.com/RobsonDevCode/growmate-probe/internal/extensions"
	servicemodels "github.com/RobsonDevCode/growmate-probe/internal/services/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// the advisory api is a single flask worker in development, so keep the fan
// out small
const DefaultConcurrency = 2

type RunOptions struct {
	Target      string
	Url         string
	Concurrency int
}

type ScenarioService interface {
	Run(ctx context.Context, scenarios []servicemodels.Scenario, options RunOptions) ([]servicemodels.ScenarioResult, error)
}

type ScenarioRunner struct {
	clientProvider clients.AdvisoryClientProvider
	logger         *zap.Logger
}

func NewScenarioRunner(clientProvider clients.AdvisoryClientProvider, logger *zap.Logger) *ScenarioRunner {
	return &ScenarioRunner{
		clientProvider: clientProvider,
		logger:         logger,
	}
}

// Run posts every scenario and returns results in catalogue order. A failed
// request is recorded on its result, it does not stop the run.
func (s *ScenarioRunner) Run(ctx context.Context, scenarios []servicemodels.Scenario, options RunOptions) ([]servicemodels.ScenarioResult, error) {
	client, err := s.clientProvider.ForTarget(options.Target, options.Url)
	if err != nil {
		return nil, err
	}

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]servicemodels.ScenarioResult, len(scenarios))
	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, scenario := range scenarios {
		group.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
				results[i] = s.runScenario(gCtx, client, scenario)
				return nil
			}
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("scenario run cancelled: %w", err)
	}

	return results, nil
}

func (s *ScenarioRunner) runScenario(ctx context.Context, client clients.AdvisoryClientService, scenario servicemodels.Scenario) servicemodels.ScenarioResult {
	payload, err := json.Marshal(scenario.Payload)
	if err != nil {
		return servicemodels.ScenarioResult{Name: scenario.Name, Err: fmt.Errorf("error marshalling payload: %w", err)}
	}

	result, err := client.SendAdvisory(ctx, payload)
	if err != nil {
		s.logger.Warn("scenario request failed", zap.String("scenario", scenario.Name), zap.Error(err))
		return servicemodels.ScenarioResult{Name: scenario.Name, Err: err}
	}

	response, ok := extensions.DecodeAdvisory(result.Body)
	if !ok {
		return servicemodels.ScenarioResult{
			Name: scenario.Name,
			Err:  fmt.Errorf("status %d, response is not an advisory document: %s", result.StatusCode, extensions.TruncateString(string(result.Body), 80)),
		}
	}

	s.logger.Debug("scenario evaluated", zap.String("scenario", scenario.Name), zap.Int("status", result.StatusCode))
	return Evaluate(scenario, response)
}

// Evaluate compares a decoded response with the scenario's expectations.
// Labels are compared case and underscore insensitively, texture as a
// substring so "Sandy" accepts "Sandy Loam".
func Evaluate(scenario servicemodels.Scenario, response models.AdvisoryResponse) servicemodels.ScenarioResult {
	expected := scenario.Expected
	result := servicemodels.ScenarioResult{Name: scenario.Name}

	failure := response.Failure()
	if expected.Error != "" {
		if failure != expected.Error {
			result.Mismatches = append(result.Mismatches, fmt.Sprintf("error: expected %q, got %q", expected.Error, failure))
		}
		result.Region = "-"
		return result
	}

	if failure != "" {
		result.Mismatches = append(result.Mismatches, fmt.Sprintf("api error: %s", failure))
		return result
	}
	if response.Meta == nil {
		result.Mismatches = append(result.Mismatches, "response has no meta section")
		return result
	}

	meta := response.Meta
	profile := meta.SoilProfile
	result.Region = meta.Region
	result.Zone = meta.Zone
	result.Topography = meta.Topography
	result.Texture = profile.Type.En
	result.Potassium = profile.Potassium.En
	result.PhStatus = profile.PhStatus.En
	if item, ok := extensions.FindShoppingItem(response.Advisory, "Potash"); ok {
		result.Potash = item.QtyDisplay.En
	}

	check := func(field, want, got string, matches func(want, got string) bool) {
		if want == "" {
			return
		}
		if !matches(extensions.NormalizeLabel(want), extensions.NormalizeLabel(got)) {
			result.Mismatches = append(result.Mismatches, fmt.Sprintf("%s: expected %q, got %q", field, want, got))
		}
	}
	equal := func(want, got string) bool { return want == got }
	contains := func(want, got string) bool { return strings.Contains(got, want) }

	check("texture", expected.Texture, profile.Type.En, contains)
	check("potassium", expected.Potassium, profile.Potassium.En, equal)
	check("nitrogen", expected.Nitrogen, profile.Nitrogen.En, equal)
	check("zone", expected.Zone, meta.Zone, equal)
	check("topography", expected.Topography, meta.Topography, equal)
	check("ph status", expected.PhStatus, profile.PhStatus.En, equal)
	check("crop", expected.Crop, meta.Crop, equal)

	if len(expected.Taluks) > 0 {
		matched := false
		for _, taluk := range expected.Taluks {
			if extensions.NormalizeLabel(taluk) == extensions.NormalizeLabel(meta.Region) {
				matched = true
				break
			}
		}
		if !matched {
			result.Mismatches = append(result.Mismatches, fmt.Sprintf("taluk: expected one of %v, got %q", expected.Taluks, meta.Region))
		}
	}

	return result
}
