package Models

import (
	"time"

	"gorm.io/gorm"
)

// Snapshot holds the three source collections the reporting engine reads.
// All three are loaded inside one transaction so a report never mixes
// payments recorded after its patient rows were taken.
type Snapshot struct {
	Patients []Patient
	Payments []Payment
	Expenses []Expense
}

// SnapshotWindow narrows the payment and expense reads. Payments are
// filtered by UTC instants, expenses by their stored calendar date.
// Zero values mean no bound on that side.
type SnapshotWindow struct {
	PaidFrom *time.Time
	PaidTo   *time.Time
	DateFrom string
	DateTo   string
}

// Ledger is the reporting engine's read-only view of the database.
type Ledger struct {
	DB *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}

func (l *Ledger) TakeSnapshot(branchID uint, window SnapshotWindow) (Snapshot, error) {
	var snapshot Snapshot

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		patients := tx.Model(&Patient{})
		payments := tx.Model(&Payment{})
		expenses := tx.Model(&Expense{})

		if branchID != 0 {
			patients = patients.Where("branch_id = ?", branchID)
			payments = payments.Where("branch_id = ?", branchID)
			expenses = expenses.Where("branch_id = ?", branchID)
		}

		if window.PaidFrom != nil {
			payments = payments.Where("paid_at >= ?", *window.PaidFrom)
		}
		if window.PaidTo != nil {
			payments = payments.Where("paid_at < ?", *window.PaidTo)
		}
		if window.DateFrom != "" {
			expenses = expenses.Where("date >= ?", window.DateFrom)
		}
		if window.DateTo != "" {
			expenses = expenses.Where("date <= ?", window.DateTo)
		}

		if err := patients.Find(&snapshot.Patients).Error; err != nil {
			return err
		}
		if err := payments.Find(&snapshot.Payments).Error; err != nil {
			return err
		}
		return expenses.Find(&snapshot.Expenses).Error
	})

	if err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// ListBranches reads every branch ever created, soft-deleted ones included.
// Deleted branches keep their financial history, so reports over that history
// still need the branch names.
func (l *Ledger) ListBranches() ([]Branch, error) {
	var branches []Branch
	if err := l.DB.Unscoped().Model(&Branch{}).Order("id asc").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
