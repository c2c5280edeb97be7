package Reports

import (
	"fmt"
	"sort"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
)

// BranchRow is one branch of the comparison report.
type BranchRow struct {
	BranchID   uint   `json:"branch_id"`
	BranchName string `json:"branch_name"`
	SummaryReport
	Best bool `json:"best"`
}

// GetBranchComparison ranks every branch by net profit over the optional date
// range; any branch filter on the input is deliberately ignored since the
// report spans all branches. Branches with no activity appear as zero rows.
// Equal net profits keep ascending branch id order (stable sort) and the top
// row is flagged best by position; that tie-break is defined, if arbitrary.
func (e *Engine) GetBranchComparison(filter Filter) ([]BranchRow, error) {
	snapshot, err := e.snapshot(Filter{DateFrom: filter.DateFrom, DateTo: filter.DateTo})
	if err != nil {
		return nil, err
	}

	branches, err := e.Ledger.ListBranches()
	if err != nil {
		return nil, err
	}

	patientsByBranch := make(map[uint][]Models.Patient)
	for _, patient := range snapshot.Patients {
		patientsByBranch[patient.BranchID] = append(patientsByBranch[patient.BranchID], patient)
	}

	paymentsByBranch := make(map[uint][]Models.Payment)
	for _, payment := range snapshot.Payments {
		paymentsByBranch[payment.BranchID] = append(paymentsByBranch[payment.BranchID], payment)
	}

	expensesByBranch := make(map[uint][]Models.Expense)
	for _, expense := range snapshot.Expenses {
		expensesByBranch[expense.BranchID] = append(expensesByBranch[expense.BranchID], expense)
	}

	rows := make([]BranchRow, 0, len(branches))
	listed := make(map[uint]bool, len(branches))
	for _, branch := range branches {
		listed[branch.ID] = true
		rows = append(rows, BranchRow{
			BranchID:      branch.ID,
			BranchName:    branch.Name,
			SummaryReport: buildSummary(patientsByBranch[branch.ID], paymentsByBranch[branch.ID], expensesByBranch[branch.ID]),
		})
	}

	// Deleting a branch keeps its patients, payments and expenses, so the
	// snapshot can hold rows for branch ids the list no longer carries. Those
	// rows still get a comparison row, otherwise the rows would no longer sum
	// to the all-branches summary.
	for _, id := range orphanBranchIDs(listed, patientsByBranch, paymentsByBranch, expensesByBranch) {
		rows = append(rows, BranchRow{
			BranchID:      id,
			BranchName:    fmt.Sprintf("branch %d (removed)", id),
			SummaryReport: buildSummary(patientsByBranch[id], paymentsByBranch[id], expensesByBranch[id]),
		})
	}

	// ListBranches returns id-ascending rows, so the stable sort keeps that
	// order for equal net profits.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetProfit > rows[j].NetProfit
	})

	if len(rows) > 0 {
		rows[0].Best = true
	}

	return rows, nil
}

// orphanBranchIDs collects, ascending, every branch id that appears in the
// snapshot maps but not in the branch list.
func orphanBranchIDs(
	listed map[uint]bool,
	patients map[uint][]Models.Patient,
	payments map[uint][]Models.Payment,
	expenses map[uint][]Models.Expense,
) []uint {
	seen := make(map[uint]bool)
	var ids []uint

	add := func(id uint) {
		if listed[id] || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	for id := range patients {
		add(id)
	}
	for id := range payments {
		add(id)
	}
	for id := range expenses {
		add(id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
