package scenarioservice

import (
	"fmt"
	"os"

	servicemodels "github.com/RobsonDevCode/growmate-probe/internal/services/models"
	"gopkg.in/yaml.v3"
)

type scenarioFile struct {
	Scenarios []servicemodels.Scenario `yaml:"scenarios"`
}

// LoadScenarios reads a yaml catalogue shaped like the built in one.
func LoadScenarios(path string) ([]servicemodels.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario file: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error unmarshalling scenario file %s: %w", path, err)
	}

	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s has no scenarios", path)
	}

	for i, scenario := range file.Scenarios {
		if scenario.Name == "" {
			return nil, fmt.Errorf("scenario %d in %s has no name", i+1, path)
		}
		if scenario.Payload == nil {
			return nil, fmt.Errorf("scenario %q in %s has no payload", scenario.Name, path)
		}
	}

	return file.Scenarios, nil
}

// BuiltinScenarios covers the Udupi district zones plus the api's input
// validation paths.
func BuiltinScenarios() []servicemodels.Scenario {
	return []servicemodels.Scenario{
		{
			Name:        "Coastal Strip (Malpe)",
			Description: "sandy texture, neutral pH near the sea",
			Payload:     gps(13.3525, 74.6943, "Coconut", "2026-06-15", 1.0),
			Expected: servicemodels.ScenarioExpectation{
				Texture: "Sandy", Potassium: "Low", Taluks: []string{"Udupi", "Brahmavar"},
			},
		},
		{
			Name:        "Midland Plains (Brahmavar)",
			Description: "sandy clay loam, low potassium",
			Payload:     gps(13.4105, 74.7460, "Paddy", "2026-06-15", 2.0),
			Expected: servicemodels.ScenarioExpectation{
				Texture: "Sandy Clay Loam", Potassium: "Low", Taluks: []string{"Brahmavar"},
			},
		},
		{
			Name:        "Interior Highland (Hebri)",
			Description: "clay loam, medium potassium, low phosphorus",
			Payload:     gps(13.4593, 74.9868, "Arecanut", "2026-06-15", 5.0),
			Expected: servicemodels.ScenarioExpectation{
				Texture: "Clay Loam", Potassium: "Medium", Taluks: []string{"Hebri"},
			},
		},
		{
			Name:        "North Coastal (Maravanthe)",
			Description: "sandy strip, potassium deficient",
			Payload:     gps(13.6967, 74.6464, "Coconut", "2026-06-15", 1.5),
			Expected: servicemodels.ScenarioExpectation{
				Texture: "Sandy", Potassium: "Low", Taluks: []string{"Byndoor"},
			},
		},
		{
			Name:    "Coastal Lowland (Swarna)",
			Payload: gps(13.37, 74.745, "Paddy", "2026-06-01", 0),
			Expected: servicemodels.ScenarioExpectation{
				Zone: "coastal", Topography: "Lowland", Texture: "sandy", PhStatus: "neutral",
			},
		},
		{
			Name:    "Coastal Upland (Beachside)",
			Payload: gps(13.35, 74.70, "Coconut", "2026-06-01", 0),
			Expected: servicemodels.ScenarioExpectation{
				Zone: "coastal", Topography: "Upland", Texture: "sandy", PhStatus: "neutral",
			},
		},
		{
			Name:    "Midland Lowland (Swarna)",
			Payload: gps(13.36, 74.78, "Arecanut", "2026-06-01", 0),
			Expected: servicemodels.ScenarioExpectation{
				Zone: "midland", Topography: "Lowland", Texture: "clay loam", Nitrogen: "medium",
			},
		},
		{
			Name:    "Midland Upland (Rocky)",
			Payload: gps(13.55, 74.85, "Paddy", "2026-06-01", 0),
			Expected: servicemodels.ScenarioExpectation{
				Zone: "midland", Topography: "Upland", Texture: "lateritic", PhStatus: "acidic",
			},
		},
		{
			Name:    "Ghats Forest (Hebri)",
			Payload: gps(13.45, 75.05, "Paddy", "2026-06-01", 0),
			Expected: servicemodels.ScenarioExpectation{
				Zone: "ghats", Topography: "Upland", Texture: "clay loam", PhStatus: "acidic",
			},
		},
		{
			Name:        "Kundapura Audit",
			Description: "potassium must be low",
			Payload: map[string]interface{}{
				"lat": 13.6223, "lon": 74.6868, "crop": "Paddy",
				"sowing_date": "2026-06-15", "area_acres": 1.0, "rain_forecast_mm": 10.0,
			},
			Expected: servicemodels.ScenarioExpectation{Potassium: "Low"},
		},
		{
			Name:     "Missing Coordinates",
			Payload:  map[string]interface{}{"crop": "Paddy"},
			Expected: servicemodels.ScenarioExpectation{Error: "Missing Soil Data or GPS Coordinates"},
		},
		{
			Name:     "Invalid Coordinates",
			Payload:  map[string]interface{}{"lat": "invalid", "lon": 74.0, "crop": "Paddy"},
			Expected: servicemodels.ScenarioExpectation{Error: "Invalid Latitude/Longitude"},
		},
		{
			Name:     "Invalid Lab Data",
			Payload:  map[string]interface{}{"ph": "acidic", "nitrogen_kg_ha": 100, "crop": "Paddy"},
			Expected: servicemodels.ScenarioExpectation{Error: "Invalid numeric values in Soil Data"},
		},
		{
			Name:        "Garbage Manure Loads",
			Description: "optional fields fall back to defaults",
			Payload:     map[string]interface{}{"lat": 13.0, "lon": 74.0, "crop": "Paddy", "manure_loads": "invalid_number"},
		},
		{
			Name:        "Default Crop",
			Description: "crop falls back to Paddy",
			Payload:     map[string]interface{}{"lat": 13.0, "lon": 74.0},
			Expected:    servicemodels.ScenarioExpectation{Crop: "Paddy"},
		},
	}
}

func gps(lat, lon float64, crop, sowingDate string, areaAcres float64) map[string]interface{} {
	payload := map[string]interface{}{
		"lat":         lat,
		"lon":         lon,
		"crop":        crop,
		"sowing_date": sowingDate,
	}
	if areaAcres > 0 {
		payload["area_acres"] = areaAcres
	}
	return payload
}
