package clients

import (
	"net/url"

	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	probeerrors "github.com/RobsonDevCode/growmate-probe/internal/probeErrors"
	"go.uber.org/zap"
)

type AdvisoryClientProvider interface {
	ForTarget(target string, overrideUrl string) (AdvisoryClientService, error)
	TargetNames() []string
}

// ClientProvider builds one client per target. The target is chosen per
// command, so clients can't be injected up front.
type ClientProvider struct {
	settings configuration.AdvisoryClientSettings
	logger   *zap.Logger
}

func NewClientProvider(settings configuration.AdvisoryClientSettings, logger *zap.Logger) *ClientProvider {
	return &ClientProvider{settings: settings, logger: logger}
}

// ForTarget resolves target from configuration unless overrideUrl is set.
// An empty target means the configured active one.
func (p *ClientProvider) ForTarget(target string, overrideUrl string) (AdvisoryClientService, error) {
	var baseUrl *url.URL
	var err error
	if overrideUrl != "" {
		baseUrl, err = configuration.ParseBaseUrl(overrideUrl)
	} else {
		baseUrl, err = p.settings.ResolveTarget(target)
	}
	if err != nil {
		return nil, probeerrors.New(exitcodes.UrlMalformed, err)
	}

	return NewAdvisoryClient(p.settings, baseUrl, p.logger.With(zap.String("base_url", baseUrl.String()))), nil
}

func (p *ClientProvider) TargetNames() []string {
	return p.settings.TargetNames()
}
