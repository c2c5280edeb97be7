package Models

import "gorm.io/gorm"

type Expense struct {
	gorm.Model
	BranchID    uint   `json:"branch_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"` // whole dinars, must be positive
	Date        string `json:"date"`   // calendar date, format 2006-01-02
}
