package Reports

import (
	"sort"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
)

// UnspecifiedService is the fallback bucket for rows without a service label.
const UnspecifiedService = "unspecified"

// ServiceRow is one service-type bucket of the profitability report.
type ServiceRow struct {
	Service        string  `json:"service"`
	PatientCount   int     `json:"patient_count"`
	Revenue        int64   `json:"revenue"`
	Paid           int64   `json:"paid"`
	Remaining      int64   `json:"remaining"`
	CollectionRate float64 `json:"collection_rate"`
}

// GetServiceProfitability groups patients and payments by service label and
// orders buckets by descending revenue. Expenses carry no service label and
// are not part of this report.
func (e *Engine) GetServiceProfitability(filter Filter) ([]ServiceRow, error) {
	snapshot, err := e.snapshot(Filter{BranchID: filter.BranchID})
	if err != nil {
		return nil, err
	}

	patientsByService := make(map[string][]Models.Patient)
	for _, patient := range snapshot.Patients {
		patientsByService[serviceLabel(patient.ServiceType)] = append(patientsByService[serviceLabel(patient.ServiceType)], patient)
	}

	paymentsByService := make(map[string][]Models.Payment)
	for _, payment := range snapshot.Payments {
		paymentsByService[serviceLabel(payment.ServiceType)] = append(paymentsByService[serviceLabel(payment.ServiceType)], payment)
	}

	labels := make(map[string]struct{})
	for label := range patientsByService {
		labels[label] = struct{}{}
	}
	for label := range paymentsByService {
		labels[label] = struct{}{}
	}

	rows := make([]ServiceRow, 0, len(labels))
	for label := range labels {
		patients := patientsByService[label]
		payments := paymentsByService[label]

		revenue := Revenue(patients)
		paid := Paid(payments)

		rows = append(rows, ServiceRow{
			Service:        label,
			PatientCount:   PatientCount(patients),
			Revenue:        revenue,
			Paid:           paid,
			Remaining:      Remaining(revenue, paid),
			CollectionRate: CollectionRate(revenue, paid),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].Service < rows[j].Service
	})

	return rows, nil
}

func serviceLabel(label string) string {
	if label == "" {
		return UnspecifiedService
	}
	return label
}
