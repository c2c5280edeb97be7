package Reports

import (
	"testing"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"

	"github.com/stretchr/testify/assert"
)

func TestRevenueSkipsPatientsWithoutCost(t *testing.T) {
	patients := []Models.Patient{
		{TotalCost: 1000000},
		{TotalCost: 0},
		{TotalCost: 250000},
	}
	assert.Equal(t, int64(1250000), Revenue(patients))
}

func TestRevenueEmptyInput(t *testing.T) {
	assert.Equal(t, int64(0), Revenue(nil))
	assert.Equal(t, int64(0), Revenue([]Models.Patient{}))
}

func TestPaidSumsAmounts(t *testing.T) {
	payments := []Models.Payment{
		{Amount: 300000},
		{Amount: 200000},
	}
	assert.Equal(t, int64(500000), Paid(payments))
}

func TestPaidPropagatesNegativeAnomalies(t *testing.T) {
	// A negative amount is a data-entry bug upstream; the calculator must not
	// hide it.
	payments := []Models.Payment{
		{Amount: 100000},
		{Amount: -40000},
	}
	assert.Equal(t, int64(60000), Paid(payments))
}

func TestRemainingFloorsAtZero(t *testing.T) {
	assert.Equal(t, int64(500000), Remaining(1000000, 500000))
	assert.Equal(t, int64(0), Remaining(1000000, 1000000))
	assert.Equal(t, int64(0), Remaining(1000000, 1500000), "over-payment must not go negative")
	assert.Equal(t, int64(0), Remaining(0, 0))
}

func TestNetProfitCanBeNegative(t *testing.T) {
	assert.Equal(t, int64(-200000), NetProfit(300000, 500000))
	assert.Equal(t, int64(0), NetProfit(0, 0))
}

func TestCollectionRateZeroRevenue(t *testing.T) {
	assert.Equal(t, float64(0), CollectionRate(0, 0))
	assert.Equal(t, float64(0), CollectionRate(0, 500000), "paid against zero revenue is still rate 0")
}

func TestCollectionRateRoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 50.0, CollectionRate(1000000, 500000))
	assert.Equal(t, 33.3, CollectionRate(3, 1))
	assert.Equal(t, 66.7, CollectionRate(3, 2))
	assert.Equal(t, 150.0, CollectionRate(1000000, 1500000), "over-payment may exceed 100")
}

func TestTotalExpensesEmptyInput(t *testing.T) {
	assert.Equal(t, int64(0), TotalExpenses(nil))
}

func TestPatientCount(t *testing.T) {
	assert.Equal(t, 0, PatientCount(nil))
	assert.Equal(t, 2, PatientCount([]Models.Patient{{}, {}}))
}
