package Reports

import "fmt"

// Filter selects the rows a report is computed over. BranchID 0 means all
// branches. Dates are inclusive clinic-local calendar dates in the format
// 2006-01-02; empty strings leave that side unbounded.
type Filter struct {
	BranchID uint   `json:"branch_id"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// ValidationError reports which filter field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks the date range. An unknown branch id is not an error here:
// a branch legitimately filtered down to zero rows yields a zero-valued
// report instead.
func (f Filter) Validate(bucketer *TimeBucketer) error {
	if f.DateFrom != "" {
		if _, err := bucketer.ParseDate(f.DateFrom); err != nil {
			return &ValidationError{Field: "date_from", Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", f.DateFrom)}
		}
	}
	if f.DateTo != "" {
		if _, err := bucketer.ParseDate(f.DateTo); err != nil {
			return &ValidationError{Field: "date_to", Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", f.DateTo)}
		}
	}

	// Lexicographic comparison is valid for the fixed YYYY-MM-DD format.
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return &ValidationError{Field: "date_range", Reason: fmt.Sprintf("date_from %s is after date_to %s", f.DateFrom, f.DateTo)}
	}

	return nil
}
