package Reports

import (
	"errors"
	"testing"
	"time"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLedger serves canned rows, applying the same branch and window
// filtering the real store does in SQL.
type fakeLedger struct {
	patients []Models.Patient
	payments []Models.Payment
	expenses []Models.Expense
	branches []Models.Branch
	err      error
}

func (f *fakeLedger) TakeSnapshot(branchID uint, window Models.SnapshotWindow) (Models.Snapshot, error) {
	if f.err != nil {
		return Models.Snapshot{}, f.err
	}

	var snapshot Models.Snapshot
	for _, patient := range f.patients {
		if branchID != 0 && patient.BranchID != branchID {
			continue
		}
		snapshot.Patients = append(snapshot.Patients, patient)
	}
	for _, payment := range f.payments {
		if branchID != 0 && payment.BranchID != branchID {
			continue
		}
		if window.PaidFrom != nil && payment.PaidAt.Before(*window.PaidFrom) {
			continue
		}
		if window.PaidTo != nil && !payment.PaidAt.Before(*window.PaidTo) {
			continue
		}
		snapshot.Payments = append(snapshot.Payments, payment)
	}
	for _, expense := range f.expenses {
		if branchID != 0 && expense.BranchID != branchID {
			continue
		}
		if window.DateFrom != "" && expense.Date < window.DateFrom {
			continue
		}
		if window.DateTo != "" && expense.Date > window.DateTo {
			continue
		}
		snapshot.Expenses = append(snapshot.Expenses, expense)
	}
	return snapshot, nil
}

func (f *fakeLedger) ListBranches() ([]Models.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.branches, nil
}

func patient(id, branch uint, cost int64, created time.Time, service string) Models.Patient {
	return Models.Patient{
		Model:       gorm.Model{ID: id, CreatedAt: created},
		Name:        "patient",
		BranchID:    branch,
		TotalCost:   cost,
		ServiceType: service,
	}
}

func payment(id, patientID, branch uint, amount int64, paidAt time.Time, service string) Models.Payment {
	return Models.Payment{
		Model:       gorm.Model{ID: id},
		PatientID:   patientID,
		BranchID:    branch,
		Amount:      amount,
		PaidAt:      paidAt,
		ServiceType: service,
	}
}

func expense(id, branch uint, amount int64, date string) Models.Expense {
	return Models.Expense{
		Model:    gorm.Model{ID: id},
		BranchID: branch,
		Category: "supplies",
		Amount:   amount,
		Date:     date,
	}
}

// testNow is mid-June 2025, well clear of day boundaries.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, ledger Ledger) *Engine {
	t.Helper()
	bucketer := baghdadBucketer(t, testNow)
	return NewEngine(ledger, bucketer)
}

func TestGetSummaryBaghdadScenario(t *testing.T) {
	ledger := &fakeLedger{
		patients: []Models.Patient{
			patient(1, 1, 1000000, testNow, ""),
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 300000, testNow, ""),
			payment(2, 1, 1, 200000, testNow, ""),
		},
	}
	engine := newTestEngine(t, ledger)

	summary, err := engine.GetSummary(Filter{BranchID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1000000), summary.Revenue)
	assert.Equal(t, int64(500000), summary.Paid)
	assert.Equal(t, int64(500000), summary.Remaining)
	assert.Equal(t, 50.0, summary.CollectionRate)
	assert.Equal(t, 1, summary.PatientCount)
}

func TestGetSummaryUnknownBranchIsAllZero(t *testing.T) {
	ledger := &fakeLedger{
		patients: []Models.Patient{patient(1, 1, 1000000, testNow, "")},
	}
	engine := newTestEngine(t, ledger)

	summary, err := engine.GetSummary(Filter{BranchID: 99})
	require.NoError(t, err)
	assert.Equal(t, SummaryReport{}, summary)
}

func TestGetSummaryDateRangeWindowsPayments(t *testing.T) {
	inRange := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC)
	// 21:30 UTC on May 31st is already June 1st in Baghdad, outside a range
	// ending May 31st.
	outOfRange := time.Date(2025, time.May, 31, 21, 30, 0, 0, time.UTC)

	ledger := &fakeLedger{
		patients: []Models.Patient{patient(1, 1, 1000000, testNow, "")},
		payments: []Models.Payment{
			payment(1, 1, 1, 300000, inRange, ""),
			payment(2, 1, 1, 200000, outOfRange, ""),
		},
		expenses: []Models.Expense{
			expense(1, 1, 50000, "2025-05-20"),
			expense(2, 1, 70000, "2025-06-02"),
		},
	}
	engine := newTestEngine(t, ledger)

	summary, err := engine.GetSummary(Filter{BranchID: 1, DateFrom: "2025-05-01", DateTo: "2025-05-31"})
	require.NoError(t, err)

	assert.Equal(t, int64(300000), summary.Paid)
	assert.Equal(t, int64(50000), summary.Expenses)
	assert.Equal(t, int64(250000), summary.NetProfit)
}

func TestGetSummaryInvertedRange(t *testing.T) {
	engine := newTestEngine(t, &fakeLedger{})

	_, err := engine.GetSummary(Filter{DateFrom: "2025-06-01", DateTo: "2025-05-01"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "date_range", validation.Field)
}

func TestGetSummaryRejectsBadDate(t *testing.T) {
	engine := newTestEngine(t, &fakeLedger{})

	_, err := engine.GetSummary(Filter{DateFrom: "01-06-2025"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "date_from", validation.Field)
}

func TestGetSummaryPropagatesStorageErrors(t *testing.T) {
	storageErr := errors.New("connection reset")
	engine := newTestEngine(t, &fakeLedger{err: storageErr})

	_, err := engine.GetSummary(Filter{})
	assert.ErrorIs(t, err, storageErr)
}

func TestGetDebtorsOrderingAndMembership(t *testing.T) {
	lastPaid := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	ledger := &fakeLedger{
		patients: []Models.Patient{
			patient(1, 1, 500000, testNow, ""),  // owes 200000
			patient(2, 1, 300000, testNow, ""),  // fully paid
			patient(3, 1, 200000, testNow, ""),  // owes 200000, tie with patient 1
			patient(4, 1, 0, testNow, ""),       // no cost set, never a debtor
			patient(5, 1, 100000, testNow, ""),  // no payments at all
			patient(6, 1, 100000, testNow, ""),  // over-paid
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 300000, lastPaid, ""),
			payment(2, 2, 1, 300000, lastPaid, ""),
			payment(3, 6, 1, 150000, lastPaid, ""),
		},
	}
	engine := newTestEngine(t, ledger)

	debtors, err := engine.GetDebtors(Filter{BranchID: 1})
	require.NoError(t, err)
	require.Len(t, debtors, 3)

	// Equal debts fall back to ascending patient id.
	assert.Equal(t, uint(1), debtors[0].PatientID)
	assert.Equal(t, uint(3), debtors[1].PatientID)
	assert.Equal(t, uint(5), debtors[2].PatientID)

	assert.Equal(t, int64(200000), debtors[0].Remaining)
	require.NotNil(t, debtors[0].LastPaymentDate)
	assert.True(t, debtors[0].LastPaymentDate.Equal(lastPaid))

	assert.Nil(t, debtors[2].LastPaymentDate, "patient with no payments has no last payment date")

	for _, debtor := range debtors {
		assert.Greater(t, debtor.Remaining, int64(0))
	}
}

func TestGetDebtorsRemovingOnlyPaymentCreatesDebtor(t *testing.T) {
	ledger := &fakeLedger{
		patients: []Models.Patient{patient(1, 1, 400000, testNow, "")},
		payments: []Models.Payment{payment(1, 1, 1, 400000, testNow, "")},
	}
	engine := newTestEngine(t, ledger)

	debtors, err := engine.GetDebtors(Filter{BranchID: 1})
	require.NoError(t, err)
	assert.Empty(t, debtors)

	ledger.payments = nil
	debtors, err = engine.GetDebtors(Filter{BranchID: 1})
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, int64(400000), debtors[0].Remaining)
}

func TestGetMonthlyTrendZeroFillsEmptyMonths(t *testing.T) {
	ledger := &fakeLedger{
		patients: []Models.Patient{patient(1, 1, 1000000, testNow, "")},
		payments: []Models.Payment{payment(1, 1, 1, 250000, testNow, "")},
		expenses: []Models.Expense{expense(1, 1, 100000, "2025-06-10")},
	}
	engine := newTestEngine(t, ledger)

	rows, err := engine.GetMonthlyTrend(Filter{}, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2025-04", rows[0].Label)
	assert.Equal(t, "2025-05", rows[1].Label)
	assert.Equal(t, "2025-06", rows[2].Label)

	assert.Equal(t, SummaryReport{}, rows[0].SummaryReport)
	assert.Equal(t, SummaryReport{}, rows[1].SummaryReport)

	assert.Equal(t, int64(1000000), rows[2].Revenue)
	assert.Equal(t, int64(250000), rows[2].Paid)
	assert.Equal(t, int64(100000), rows[2].Expenses)
	assert.Equal(t, int64(150000), rows[2].NetProfit)
}

func TestGetMonthlyTrendBucketsByLocalMonth(t *testing.T) {
	// 21:30 UTC on May 31st is June 1st in Baghdad; the payment belongs to
	// the June row.
	boundary := time.Date(2025, time.May, 31, 21, 30, 0, 0, time.UTC)
	ledger := &fakeLedger{
		payments: []Models.Payment{payment(1, 1, 1, 100000, boundary, "")},
	}
	engine := newTestEngine(t, ledger)

	rows, err := engine.GetMonthlyTrend(Filter{}, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-05", rows[0].Label)
	assert.Equal(t, int64(0), rows[0].Paid)
	assert.Equal(t, "2025-06", rows[1].Label)
	assert.Equal(t, int64(100000), rows[1].Paid)
}

func TestGetMonthlyTrendRejectsNonPositiveCount(t *testing.T) {
	engine := newTestEngine(t, &fakeLedger{})

	_, err := engine.GetMonthlyTrend(Filter{}, 0)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "month_count", validation.Field)
}

func TestGetServiceProfitability(t *testing.T) {
	ledger := &fakeLedger{
		patients: []Models.Patient{
			patient(1, 1, 5000000, testNow, "Above Knee"),
			patient(2, 1, 2000000, testNow, "Below Elbow"),
			patient(3, 1, 1000000, testNow, ""),
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 2500000, testNow, "Above Knee"),
			payment(2, 3, 1, 400000, testNow, ""),
		},
	}
	engine := newTestEngine(t, ledger)

	rows, err := engine.GetServiceProfitability(Filter{BranchID: 1})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Above Knee", rows[0].Service)
	assert.Equal(t, int64(5000000), rows[0].Revenue)
	assert.Equal(t, 50.0, rows[0].CollectionRate)

	assert.Equal(t, "Below Elbow", rows[1].Service)

	assert.Equal(t, UnspecifiedService, rows[2].Service)
	assert.Equal(t, int64(1000000), rows[2].Revenue)
	assert.Equal(t, int64(400000), rows[2].Paid)
	assert.Equal(t, int64(600000), rows[2].Remaining)
}

func TestGetBranchComparisonRanking(t *testing.T) {
	ledger := &fakeLedger{
		branches: []Models.Branch{
			{Model: gorm.Model{ID: 1}, Name: "Baghdad"},
			{Model: gorm.Model{ID: 2}, Name: "Basra"},
			{Model: gorm.Model{ID: 3}, Name: "Erbil"},
		},
		patients: []Models.Patient{
			patient(1, 1, 1000000, testNow, ""),
			patient(2, 2, 800000, testNow, ""),
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 600000, testNow, ""),
			payment(2, 2, 2, 500000, testNow, ""),
		},
		expenses: []Models.Expense{
			expense(1, 1, 100000, "2025-06-01"),
			expense(2, 2, 300000, "2025-06-01"),
		},
	}
	engine := newTestEngine(t, ledger)

	// The branch filter must be ignored; the report spans all branches.
	rows, err := engine.GetBranchComparison(Filter{BranchID: 2})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Baghdad", rows[0].BranchName)
	assert.Equal(t, int64(500000), rows[0].NetProfit)
	assert.True(t, rows[0].Best)

	assert.Equal(t, "Basra", rows[1].BranchName)
	assert.Equal(t, int64(200000), rows[1].NetProfit)
	assert.False(t, rows[1].Best)

	// No activity still yields a row, all zeros.
	assert.Equal(t, "Erbil", rows[2].BranchName)
	assert.Equal(t, SummaryReport{}, rows[2].SummaryReport)
}

func TestGetBranchComparisonTieBreaksByBranchID(t *testing.T) {
	ledger := &fakeLedger{
		branches: []Models.Branch{
			{Model: gorm.Model{ID: 1}, Name: "Baghdad"},
			{Model: gorm.Model{ID: 2}, Name: "Basra"},
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 500000, testNow, ""),
			payment(2, 2, 2, 500000, testNow, ""),
		},
	}
	engine := newTestEngine(t, ledger)

	rows, err := engine.GetBranchComparison(Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Identical net profit keeps the stable id-ascending order, so the lower
	// id takes the best flag.
	assert.Equal(t, uint(1), rows[0].BranchID)
	assert.True(t, rows[0].Best)
	assert.False(t, rows[1].Best)
}

func TestGetBranchComparisonCountsRemovedBranchHistory(t *testing.T) {
	// Deleting a branch keeps its financial rows; branch 2 is gone from the
	// branch list but its payments remain.
	ledger := &fakeLedger{
		branches: []Models.Branch{
			{Model: gorm.Model{ID: 1}, Name: "Baghdad"},
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 400000, testNow, ""),
			payment(2, 2, 2, 300000, testNow, ""),
		},
	}
	engine := newTestEngine(t, ledger)

	rows, err := engine.GetBranchComparison(Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var paid int64
	for _, row := range rows {
		paid += row.Paid
	}

	all, err := engine.GetSummary(Filter{})
	require.NoError(t, err)
	assert.Equal(t, all.Paid, paid, "comparison rows must sum to the all-branches summary")

	assert.Equal(t, uint(2), rows[1].BranchID)
	assert.Equal(t, "branch 2 (removed)", rows[1].BranchName)
	assert.Equal(t, int64(300000), rows[1].Paid)
}

func TestCrossReportConsistency(t *testing.T) {
	ledger := &fakeLedger{
		branches: []Models.Branch{
			{Model: gorm.Model{ID: 1}, Name: "Baghdad"},
			{Model: gorm.Model{ID: 2}, Name: "Basra"},
		},
		patients: []Models.Patient{
			patient(1, 1, 1000000, testNow, ""),
			patient(2, 2, 750000, testNow, ""),
			patient(3, 2, 0, testNow, ""),
		},
		payments: []Models.Payment{
			payment(1, 1, 1, 400000, testNow, ""),
			payment(2, 2, 2, 300000, testNow, ""),
		},
		expenses: []Models.Expense{
			expense(1, 1, 120000, "2025-06-01"),
			expense(2, 2, 80000, "2025-06-02"),
		},
	}
	engine := newTestEngine(t, ledger)

	all, err := engine.GetSummary(Filter{})
	require.NoError(t, err)

	rows, err := engine.GetBranchComparison(Filter{})
	require.NoError(t, err)

	var revenue, paid, expenses, netProfit int64
	for _, row := range rows {
		revenue += row.Revenue
		paid += row.Paid
		expenses += row.Expenses
		netProfit += row.NetProfit
	}

	assert.Equal(t, all.Revenue, revenue)
	assert.Equal(t, all.Paid, paid)
	assert.Equal(t, all.Expenses, expenses)
	assert.Equal(t, all.NetProfit, netProfit)
}
