package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// ExportDebtorsExcel reshapes the debtor report into a spreadsheet. Pure
// formatting; all numbers come from the engine.
func ExportDebtorsExcel(c *gin.Context) {
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

	headers := map[string]string{
		"A1": "Patient",
		"B1": "Phone",
		"C1": "Total Cost",
		"D1": "Paid",
		"E1": "Remaining",
		"F1": "Last Payment",
	}
	file := excelize.NewFile()
	sheet := "Debtors"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i, debtor := range debtors {
		rowCount := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), debtor.Name)
		file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), debtor.Phone)
		file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), debtor.TotalCost)
		file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), debtor.Paid)
		file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), debtor.Remaining)
		if debtor.LastPaymentDate != nil {
			file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), debtor.LastPaymentDate.Format("2006-01-02"))
		}
	}

	var filename string = "./Debtors.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

// ExportTrendExcel reshapes the monthly trend report into a spreadsheet.
func ExportTrendExcel(c *gin.Context) {
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

	headers := map[string]string{
		"A1": "Month",
		"B1": "Revenue",
		"C1": "Paid",
		"D1": "Remaining",
		"E1": "Expenses",
		"F1": "Net Profit",
		"G1": "Collection Rate %",
	}
	file := excelize.NewFile()
	sheet := "MonthlyTrend"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i, row := range rows {
		rowCount := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), row.Label)
		file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), row.Revenue)
		file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), row.Paid)
		file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), row.Remaining)
		file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), row.Expenses)
		file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), row.NetProfit)
		file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), row.CollectionRate)
	}

	var filename string = "./MonthlyTrend.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}
