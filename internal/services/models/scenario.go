package servicemodels

// Scenario is one regional request with the profile the api should derive.
type Scenario struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Payload     map[string]interface{} `yaml:"payload"`
	Expected    ScenarioExpectation    `yaml:"expected"`
}

// Empty fields are not checked.
type ScenarioExpectation struct {
	Texture    string   `yaml:"texture,omitempty"`
	Potassium  string   `yaml:"potassium,omitempty"`
	Nitrogen   string   `yaml:"nitrogen,omitempty"`
	Taluks     []string `yaml:"taluks,omitempty"`
	Zone       string   `yaml:"zone,omitempty"`
	Topography string   `yaml:"topography,omitempty"`
	PhStatus   string   `yaml:"ph_status,omitempty"`
	Crop       string   `yaml:"crop,omitempty"`
	Error      string   `yaml:"error,omitempty"`
}

type ScenarioResult struct {
	Name       string
	Region     string
	Zone       string
	Topography string
	Texture    string
	Potassium  string
	PhStatus   string
	Potash     string
	Mismatches []string
	Err        error
}

func (r ScenarioResult) Passed() bool {
	return r.Err == nil && len(r.Mismatches) == 0
}
