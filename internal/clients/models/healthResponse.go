package models

const StatusHealthy = "healthy"

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (h HealthResponse) IsHealthy() bool {
	return h.Status == StatusHealthy
}
