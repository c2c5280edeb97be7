package Reports

import (
	"sort"
	"time"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
)

// Debtor is a patient with a strictly positive outstanding balance.
type Debtor struct {
	PatientID       uint       `json:"patient_id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	TotalCost       int64      `json:"total_cost"`
	Paid            int64      `json:"paid"`
	Remaining       int64      `json:"remaining"`
	LastPaymentDate *time.Time `json:"last_payment_date"`
}

// GetDebtors lists patients owing money, largest debt first. Ties are broken
// by ascending patient id so repeated queries return the same order. The date
// range is ignored; a debt is a debt regardless of when it was incurred.
func (e *Engine) GetDebtors(filter Filter) ([]Debtor, error) {
	snapshot, err := e.snapshot(Filter{BranchID: filter.BranchID})
	if err != nil {
		return nil, err
	}

	paymentsByPatient := make(map[uint][]Models.Payment)
	for _, payment := range snapshot.Payments {
		paymentsByPatient[payment.PatientID] = append(paymentsByPatient[payment.PatientID], payment)
	}

	debtors := make([]Debtor, 0)
	for _, patient := range snapshot.Patients {
		payments := paymentsByPatient[patient.ID]

		revenue := Revenue([]Models.Patient{patient})
		paid := Paid(payments)
		remaining := Remaining(revenue, paid)
		if remaining <= 0 {
			continue
		}

		debtor := Debtor{
			PatientID: patient.ID,
			Name:      patient.Name,
			Phone:     patient.Phone,
			TotalCost: patient.TotalCost,
			Paid:      paid,
			Remaining: remaining,
		}
		for _, payment := range payments {
			if debtor.LastPaymentDate == nil || payment.PaidAt.After(*debtor.LastPaymentDate) {
				paidAt := payment.PaidAt
				debtor.LastPaymentDate = &paidAt
			}
		}

		debtors = append(debtors, debtor)
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Remaining != debtors[j].Remaining {
			return debtors[i].Remaining > debtors[j].Remaining
		}
		return debtors[i].PatientID < debtors[j].PatientID
	})

	return debtors, nil
}
