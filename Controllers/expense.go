package Controllers

import (
	"net/http"
	"time"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Constants"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Reports"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/SSE"

	"github.com/gin-gonic/gin"
)

func AddExpense(c *gin.Context) {
	var input struct {
		BranchID    uint   `json:"branch_id"`
		Category    string `json:"category" binding:"required"`
		Description string `json:"description"`
		Amount      int64  `json:"amount" binding:"required"`
		Date        string `json:"date"` // 2006-01-02, empty means today
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	if !Constants.IsValidExpenseCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown expense category"})
		return
	}

	branchID, exists := c.Get("branchID")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch Not Set"})
		return
	}
	if branchID.(uint) != 0 {
		input.BranchID = branchID.(uint)
	}
	if input.BranchID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	if input.Date == "" {
		input.Date = Reports.Bucketer.Today().String()
	} else if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	expense := Models.Expense{
		BranchID:    input.BranchID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
	}

	if err := Models.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.RefreshEvent)
	c.JSON(http.StatusOK, gin.H{"message": "Expense recorded successfully"})
}

func FetchExpenses(c *gin.Context) {
	branchID, err := resolveBranchFilter(c, c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := Models.DB.Model(&Models.Expense{})
	if branchID != 0 {
		query = query.Where("branch_id = ?", branchID)
	}
	if from := c.Query("date_from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var expenses []Models.Expense
	if err := query.Order("date desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func EditExpense(c *gin.Context) {
	var input Models.Expense
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !Constants.IsValidExpenseCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown expense category"})
		return
	}
	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.RefreshEvent)
	c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully"})
}

func DeleteExpense(c *gin.Context) {
	var input struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Delete(&Models.Expense{}, "id = ?", input.ID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.RefreshEvent)
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

func FetchExpenseCategories(c *gin.Context) {
	c.JSON(http.StatusOK, Constants.ExpenseCategories)
}
