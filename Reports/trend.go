package Reports

import (
	"log"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
)

// TrendRow is one month of the trend series.
type TrendRow struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	SummaryReport
}

// GetMonthlyTrend returns exactly monthCount rows, oldest first, ending with
// the current clinic-local month. Months with no activity are emitted as
// all-zero rows; skipping them would break trend continuity. Patients are
// bucketed by creation time, payments by payment time, expenses by their
// calendar date.
func (e *Engine) GetMonthlyTrend(filter Filter, monthCount int) ([]TrendRow, error) {
	if monthCount <= 0 {
		return nil, &ValidationError{Field: "month_count", Reason: "must be a positive number of months"}
	}
	if err := filter.Validate(e.Bucketer); err != nil {
		return nil, err
	}

	windows := e.Bucketer.LastNMonthBounds(monthCount)
	first := windows[0]
	last := windows[len(windows)-1]

	// One snapshot for the whole trend range; individual months are grouped
	// in memory through the bucketer.
	window := Models.SnapshotWindow{
		PaidFrom: &first.Start,
		PaidTo:   &last.End,
		DateFrom: first.Key.Label() + "-01",
		DateTo:   last.Key.Label() + "-31",
	}
	snapshot, err := e.Ledger.TakeSnapshot(filter.BranchID, window)
	if err != nil {
		return nil, err
	}

	patientsByMonth := make(map[MonthKey][]Models.Patient)
	for _, patient := range snapshot.Patients {
		key := e.Bucketer.LocalMonthKey(patient.CreatedAt)
		patientsByMonth[key] = append(patientsByMonth[key], patient)
	}

	paymentsByMonth := make(map[MonthKey][]Models.Payment)
	for _, payment := range snapshot.Payments {
		key := e.Bucketer.LocalMonthKey(payment.PaidAt)
		paymentsByMonth[key] = append(paymentsByMonth[key], payment)
	}

	expensesByMonth := make(map[MonthKey][]Models.Expense)
	for _, expense := range snapshot.Expenses {
		date, err := e.Bucketer.ParseDate(expense.Date)
		if err != nil {
			log.Printf("expense %d has unparseable date %q, skipped from trend", expense.ID, expense.Date)
			continue
		}
		key := MonthKey{Year: date.Year, Month: date.Month}
		expensesByMonth[key] = append(expensesByMonth[key], expense)
	}

	rows := make([]TrendRow, 0, monthCount)
	for _, month := range windows {
		rows = append(rows, TrendRow{
			Year:          month.Key.Year,
			Month:         int(month.Key.Month),
			Label:         month.Key.Label(),
			SummaryReport: buildSummary(patientsByMonth[month.Key], paymentsByMonth[month.Key], expensesByMonth[month.Key]),
		})
	}

	return rows, nil
}
