package Reports

import (
	"math"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
)

// Every report in this package derives its numbers from the functions in this
// file and nowhere else. A report builder computing a metric inline is a bug,
// even if the formula looks identical.

// Revenue sums estimated total treatment cost. Patients with no cost set are
// excluded so they never inflate rate denominators.
func Revenue(patients []Models.Patient) int64 {
	var total int64
	for _, patient := range patients {
		if patient.TotalCost > 0 {
			total += patient.TotalCost
		}
	}
	return total
}

// Paid sums payment amounts. Negative amounts are a data-entry anomaly and
// are deliberately not clamped; hiding them would mask the upstream bug.
func Paid(payments []Models.Payment) int64 {
	var total int64
	for _, payment := range payments {
		total += payment.Amount
	}
	return total
}

// Remaining is the outstanding balance, floored at zero so over-payment never
// produces a negative debt.
func Remaining(revenue, paid int64) int64 {
	if remaining := revenue - paid; remaining > 0 {
		return remaining
	}
	return 0
}

func TotalExpenses(expenses []Models.Expense) int64 {
	var total int64
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total
}

// NetProfit may be negative.
func NetProfit(paid, expenses int64) int64 {
	return paid - expenses
}

// CollectionRate is paid as a percentage of revenue, rounded to one decimal
// place. Zero revenue yields exactly 0 regardless of paid amount.
func CollectionRate(revenue, paid int64) float64 {
	if revenue == 0 {
		return 0
	}
	rate := float64(paid) / float64(revenue) * 100
	return math.Round(rate*10) / 10
}

func PatientCount(patients []Models.Patient) int {
	return len(patients)
}
