package Reports

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Constants"
)

// DateKey identifies a calendar day in the clinic timezone.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// MonthKey identifies a calendar month in the clinic timezone.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) Label() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// MonthWindow is one month of a trend range with its UTC bounds,
// start inclusive, end exclusive.
type MonthWindow struct {
	Key   MonthKey
	Start time.Time
	End   time.Time
}

// TimeBucketer converts timestamps to clinic-local calendar buckets. Every
// date comparison in the reporting engine goes through it; bucketing raw UTC
// timestamps directly shifts rows across day boundaries for any non-zero
// offset.
type TimeBucketer struct {
	Location *time.Location
	Now      func() time.Time
}

// Bucketer is the process-wide bucketer, set once by Setup.
var Bucketer *TimeBucketer

// Setup loads the clinic timezone. An unknown zone is a configuration error
// and aborts startup; falling back to another zone would silently move every
// report's day boundaries.
func Setup() {
	zone := os.Getenv("CLINIC_TIMEZONE")
	if zone == "" {
		zone = Constants.DefaultTimeZone
	}

	bucketer, err := NewTimeBucketer(zone)
	if err != nil {
		log.Fatalf("invalid clinic timezone %q: %v", zone, err)
	}
	Bucketer = bucketer
	log.Printf("Clinic timezone set to %s", zone)
}

func NewTimeBucketer(zone string) (*TimeBucketer, error) {
	location, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &TimeBucketer{Location: location, Now: time.Now}, nil
}

func (b *TimeBucketer) LocalDateKey(t time.Time) DateKey {
	local := t.In(b.Location)
	return DateKey{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func (b *TimeBucketer) LocalMonthKey(t time.Time) MonthKey {
	local := t.In(b.Location)
	return MonthKey{Year: local.Year(), Month: local.Month()}
}

// DayBounds returns the UTC instants of local midnight on the given day and
// local midnight on the following day.
func (b *TimeBucketer) DayBounds(key DateKey) (time.Time, time.Time) {
	start := time.Date(key.Year, key.Month, key.Day, 0, 0, 0, 0, b.Location)
	end := time.Date(key.Year, key.Month, key.Day+1, 0, 0, 0, 0, b.Location)
	return start.UTC(), end.UTC()
}

// MonthBounds returns the UTC instants of the first local midnight of the
// month and the first local midnight of the next month.
func (b *TimeBucketer) MonthBounds(key MonthKey) (time.Time, time.Time) {
	start := time.Date(key.Year, key.Month, 1, 0, 0, 0, 0, b.Location)
	end := time.Date(key.Year, key.Month+1, 1, 0, 0, 0, 0, b.Location)
	return start.UTC(), end.UTC()
}

// LastNMonthBounds returns the last n local calendar months, oldest first,
// ending with the current month.
func (b *TimeBucketer) LastNMonthBounds(n int) []MonthWindow {
	windows := make([]MonthWindow, 0, n)
	now := b.Now().In(b.Location)

	for i := n - 1; i >= 0; i-- {
		// time.Date normalizes out-of-range months across year boundaries
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, b.Location)
		key := MonthKey{Year: month.Year(), Month: month.Month()}
		start, end := b.MonthBounds(key)
		windows = append(windows, MonthWindow{Key: key, Start: start, End: end})
	}

	return windows
}

// ParseDate parses a calendar date in the storage format 2006-01-02.
func (b *TimeBucketer) ParseDate(value string) (DateKey, error) {
	parsed, err := time.ParseInLocation("2006-01-02", value, b.Location)
	if err != nil {
		return DateKey{}, err
	}
	return DateKey{Year: parsed.Year(), Month: parsed.Month(), Day: parsed.Day()}, nil
}

// Today returns the current calendar date in the clinic timezone.
func (b *TimeBucketer) Today() DateKey {
	return b.LocalDateKey(b.Now())
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}
