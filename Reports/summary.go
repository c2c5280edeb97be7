package Reports

// SummaryReport is the canonical metric set. All amounts are whole dinars.
type SummaryReport struct {
	Revenue        int64   `json:"revenue"`
	Paid           int64   `json:"paid"`
	Remaining      int64   `json:"remaining"`
	Expenses       int64   `json:"expenses"`
	NetProfit      int64   `json:"net_profit"`
	CollectionRate float64 `json:"collection_rate"`
	PatientCount   int     `json:"patient_count"`
}

// GetSummary computes the flat summary for the filtered scope. An unknown
// branch id yields an all-zero summary, not an error.
func (e *Engine) GetSummary(filter Filter) (SummaryReport, error) {
	snapshot, err := e.snapshot(filter)
	if err != nil {
		return SummaryReport{}, err
	}
	return buildSummary(snapshot.Patients, snapshot.Payments, snapshot.Expenses), nil
}
