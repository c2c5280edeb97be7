package Models

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	PatientID   uint      `json:"patient_id"`
	BranchID    uint      `json:"branch_id"` // denormalized from the patient, must match
	Amount      int64     `json:"amount"`    // whole dinars, must be positive
	PaidAt      time.Time `json:"paid_at"`
	Method      string    `json:"method"` // cash, card, transfer
	ServiceType string    `json:"service_type"`
	RecordedBy  uint      `json:"recorded_by"`
}
