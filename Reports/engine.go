package Reports

import (
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
)

// Ledger is the engine's read-only view of the source tables.
type Ledger interface {
	TakeSnapshot(branchID uint, window Models.SnapshotWindow) (Models.Snapshot, error)
	ListBranches() ([]Models.Branch, error)
}

// Engine assembles the five report shapes. It holds no per-call state;
// concurrent report requests are independent.
type Engine struct {
	Ledger   Ledger
	Bucketer *TimeBucketer
}

func NewEngine(ledger Ledger, bucketer *TimeBucketer) *Engine {
	return &Engine{Ledger: ledger, Bucketer: bucketer}
}

// snapshot validates the filter and reads one consistent snapshot. Payments
// are windowed by the UTC day bounds of the filter dates, expenses by their
// stored calendar date. Patients are never date-filtered; a date range limits
// money movement, not who is on the books.
func (e *Engine) snapshot(filter Filter) (Models.Snapshot, error) {
	if err := filter.Validate(e.Bucketer); err != nil {
		return Models.Snapshot{}, err
	}

	var window Models.SnapshotWindow

	if filter.DateFrom != "" {
		key, err := e.Bucketer.ParseDate(filter.DateFrom)
		if err != nil {
			return Models.Snapshot{}, err
		}
		start, _ := e.Bucketer.DayBounds(key)
		window.PaidFrom = &start
		window.DateFrom = filter.DateFrom
	}
	if filter.DateTo != "" {
		key, err := e.Bucketer.ParseDate(filter.DateTo)
		if err != nil {
			return Models.Snapshot{}, err
		}
		_, end := e.Bucketer.DayBounds(key)
		window.PaidTo = &end
		window.DateTo = filter.DateTo
	}

	return e.Ledger.TakeSnapshot(filter.BranchID, window)
}

// buildSummary is the one place a metric set is assembled from raw rows.
func buildSummary(patients []Models.Patient, payments []Models.Payment, expenses []Models.Expense) SummaryReport {
	revenue := Revenue(patients)
	paid := Paid(payments)
	totalExpenses := TotalExpenses(expenses)

	return SummaryReport{
		Revenue:        revenue,
		Paid:           paid,
		Remaining:      Remaining(revenue, paid),
		Expenses:       totalExpenses,
		NetProfit:      NetProfit(paid, totalExpenses),
		CollectionRate: CollectionRate(revenue, paid),
		PatientCount:   PatientCount(patients),
	}
}
