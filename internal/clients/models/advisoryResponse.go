package models

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type AdvisoryResponse struct {
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Error    string        `json:"error,omitempty"`
	Meta     *AdvisoryMeta `json:"meta,omitempty"`
	Advisory *Advisory     `json:"advisory,omitempty"`
}

type AdvisoryMeta struct {
	Mode        string      `json:"mode"`
	Region      string      `json:"region"`
	Zone        string      `json:"zone"`
	Topography  string      `json:"topography"`
	Crop        string      `json:"crop"`
	SoilProfile SoilProfile `json:"soil_profile"`
}

type SoilProfile struct {
	Nitrogen   LocalizedText `json:"nitrogen"`
	Phosphorus LocalizedText `json:"phosphorus"`
	Potassium  LocalizedText `json:"potassium"`
	Zinc       LocalizedText `json:"zinc"`
	Iron       LocalizedText `json:"iron"`
	Boron      LocalizedText `json:"boron"`
	Sulphur    LocalizedText `json:"sulphur"`
	PhStatus   LocalizedText `json:"ph_status"`
	PhValue    float64       `json:"ph_value"`
	Type       LocalizedText `json:"type"`
}

type Advisory struct {
	QuickDecisions json.RawMessage   `json:"quick_decisions"`
	WaterInsights  WaterInsights     `json:"water_insights"`
	CropAdvice     CropAdvice        `json:"crop_advice"`
	SummaryCard    []SummaryCardItem `json:"summary_card"`
	ShoppingList   []ShoppingItem    `json:"shopping_list"`
	Schedule       []ScheduleItem    `json:"schedule"`
	Substitutes    json.RawMessage   `json:"substitutes"`
	VoiceScript    json.RawMessage   `json:"voice_script"`
	Alerts         json.RawMessage   `json:"alerts"`
	SavingsMsg     json.RawMessage   `json:"savings_msg"`
}

type WaterInsights struct {
	DrainageStatus LocalizedText `json:"drainage_status"`
	MoistureStatus LocalizedText `json:"moisture_status"`
	SourceAdvice   LocalizedText `json:"source_advice"`
}

type CropAdvice struct {
	Suitability LocalizedText   `json:"suitability"`
	Warnings    []LocalizedText `json:"warnings"`
	SeasonTips  []LocalizedText `json:"season_tips"`
}

type SummaryCardItem struct {
	Label LocalizedText   `json:"label"`
	Value json.RawMessage `json:"value"`
}

type ShoppingItem struct {
	Name       LocalizedText `json:"name"`
	QtyDisplay LocalizedText `json:"qty_display"`
	Bags       int           `json:"bags"`
	LooseKg    float64       `json:"loose_kg"`
}

// Product and instruction shapes vary between API versions, so they are kept
// raw and flattened for display.
type ScheduleItem struct {
	Date         string          `json:"date"`
	Activity     LocalizedText   `json:"activity"`
	Products     ScheduleProduct `json:"products"`
	Instructions json.RawMessage `json:"instructions"`
}

type ScheduleProduct struct {
	En json.RawMessage `json:"en"`
	Kn json.RawMessage `json:"kn"`
}

// Failure returns the API's own error message. The API reports validation
// problems either as status "error" with a message or as a bare error key.
func (r AdvisoryResponse) Failure() string {
	if r.Status == StatusError {
		if r.Message != "" {
			return r.Message
		}
		if r.Error != "" {
			return r.Error
		}
		return "advisory api returned an error without a message"
	}

	return r.Error
}
