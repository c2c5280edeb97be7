package Controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Reports"

	"github.com/gin-gonic/gin"
)

var reportsEngine *Reports.Engine

// SetupReports wires the reporting engine to the database. Must run after
// ConnectDataBase and Reports.Setup.
func SetupReports() {
	reportsEngine = Reports.NewEngine(Models.NewLedger(Models.DB), Reports.Bucketer)
}

// reportFilter builds the engine filter from query parameters and the
// caller's branch scope.
func reportFilter(c *gin.Context) (Reports.Filter, error) {
	branchID, err := resolveBranchFilter(c, c.Query("branch_id"))
	if err != nil {
		return Reports.Filter{}, err
	}
	return Reports.Filter{
		BranchID: branchID,
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}, nil
}

// trendMonths reads the months query parameter shared by the trend endpoint
// and its spreadsheet export. Missing means a year.
func trendMonths(c *gin.Context) (int, error) {
	raw := c.Query("months")
	if raw == "" {
		return 12, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("months must be a number")
	}
	return parsed, nil
}

// reportError maps engine failures: filter problems are the caller's fault,
// anything else is a storage failure.
func reportError(c *gin.Context, err error) {
	var validation *Reports.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func GetSummary(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := reportsEngine.GetSummary(filter)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func GetDebtors(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	debtors, err := reportsEngine.GetDebtors(filter)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, debtors)
}

func GetMonthlyTrend(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	monthCount, err := trendMonths(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := reportsEngine.GetMonthlyTrend(filter, monthCount)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func GetServiceProfitability(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := reportsEngine.GetServiceProfitability(filter)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func GetBranchComparison(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := reportsEngine.GetBranchComparison(filter)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
