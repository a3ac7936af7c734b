package targetselectionservice

import (
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
)

// Prompter asks the user to pick one option and returns its index.
type Prompter func(message string, options []string) (int, error)

type Selection struct {
	PayloadPath string
	Target      string
}

type TargetSelectionService interface {
	Select(dir string) (Selection, error)
}

type TargetSelection struct {
	clientProvider clients.AdvisoryClientProvider
	payloadReader  payloadreaderservice.PayloadReaderService
	prompt         Prompter
}

func NewTargetSelection(clientProvider clients.AdvisoryClientProvider,
	payloadReader payloadreaderservice.PayloadReaderService,
	prompt Prompter) *TargetSelection {
	if prompt == nil {
		prompt = SurveyPrompt
	}

	return &TargetSelection{
		clientProvider: clientProvider,
		payloadReader:  payloadReader,
		prompt:         prompt,
	}
}

func (s *TargetSelection) Select(dir string) (Selection, error) {
	payloadFiles, err := s.payloadReader.ListPayloadFiles(dir)
	if err != nil {
		return Selection{}, err
	}
	if len(payloadFiles) == 0 {
		return Selection{}, fmt.Errorf("no json payload files found in %s", dir)
	}

	payloadIndex, err := s.prompt("Select a payload to send:", payloadFiles)
	if err != nil {
		return Selection{}, err
	}

	// read now so an unreadable file fails before the target prompt, the
	// send that follows is served from the shared cache
	payloadPath := filepath.Join(dir, payloadFiles[payloadIndex])
	if _, err := s.payloadReader.ReadPayload(payloadPath); err != nil {
		return Selection{}, err
	}

	targets := s.clientProvider.TargetNames()
	if len(targets) == 0 {
		return Selection{}, fmt.Errorf("no targets configured")
	}

	targetIndex, err := s.prompt("Select a target:", targets)
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		PayloadPath: payloadPath,
		Target:      targets[targetIndex],
	}, nil
}

func SurveyPrompt(message string, options []string) (int, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}

	var selectedIndex int
	if err := survey.AskOne(prompt, &selectedIndex); err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}

	return selectedIndex, nil
}
