package Models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Gender      string    `json:"gender"`
	Age         int       `json:"age"`
	Diagnosis   string    `json:"diagnosis"`
	Notes       string    `json:"notes"`
	TotalCost   int64     `json:"total_cost"`   // estimated total treatment cost, whole dinars
	ServiceType string    `json:"service_type"` // e.g. "Above Knee", "Below Elbow", empty if not set
	IsVerified  bool      `json:"is_verified"`
	BranchID    uint      `json:"branch_id"`
	Payments    []Payment `json:"payments"`
}
