package domain

import "time"

type MaintenanceLog struct {
	ID          string    `json:"id"`
	AssetID     string    `json:"asset_id"`
	ServiceType string    `json:"service_type"`
	CostRupees  int       `json:"cost_rupees"`
	ServiceDate time.Time `json:"service_date"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
