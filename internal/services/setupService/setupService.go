package setupservice

import (
	"errors"
	"fmt"
	"os"

	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
)

// SamplePayload is a GPS mode request for a paddy field near Udupi.
const SamplePayload = `{
  "crop": "Paddy",
  "lat": 13.3409,
  "lon": 74.7421,
  "area_acres": 2.0,
  "manure_type": "fym",
  "manure_loads": 2
}
`

type SetupResult struct {
	Created []string
	Skipped []string
}

// CreateSetupFiles writes the default configuration and a sample payload.
// Existing files are left untouched.
func CreateSetupFiles(configPath string, payloadPath string, remoteUrl string) (SetupResult, error) {
	var result SetupResult

	if remoteUrl != "" {
		if _, err := configuration.ParseBaseUrl(remoteUrl); err != nil {
			return result, fmt.Errorf("\nurl seems to be in an incorrect format: %w", err)
		}
	}

	exists, err := fileExists(configPath)
	if err != nil {
		return result, err
	}
	if exists {
		result.Skipped = append(result.Skipped, configPath)
	} else {
		config := configuration.Default()
		config.AdvisoryClientSettings.Targets[configuration.RemoteTarget] = remoteUrl
		if err := configuration.Save(configPath, config); err != nil {
			return result, err
		}
		result.Created = append(result.Created, configPath)
	}

	exists, err = fileExists(payloadPath)
	if err != nil {
		return result, err
	}
	if exists {
		result.Skipped = append(result.Skipped, payloadPath)
	} else {
		if err := os.WriteFile(payloadPath, []byte(SamplePayload), 0644); err != nil {
			return result, fmt.Errorf("error writing file at %s, %w", payloadPath, err)
		}
		result.Created = append(result.Created, payloadPath)
	}

	return result, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("cannot check %s: %w", path, err)
}
