package models

// LocalizedText carries the English and Kannada renderings the API returns
// side by side.
type LocalizedText struct {
	En string `json:"en"`
	Kn string `json:"kn"`
}
