package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/FirebaseMessaging"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/SSE"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Utils/Token"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Whatsapp"

	"github.com/gin-gonic/gin"
)

func AddPayment(c *gin.Context) {
	var input struct {
		PatientID   uint   `json:"patient_id" binding:"required"`
		Amount      int64  `json:"amount" binding:"required"`
		Method      string `json:"method"`
		ServiceType string `json:"service_type"`
		PaidAt      string `json:"paid_at"` // RFC3339, empty means now
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	var patient Models.Patient
	if err := Models.DB.First(&patient, input.PatientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Patient not found"})
		return
	}

	scope, exists := c.Get("branchID")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch Not Set"})
		return
	}
	if !branchScopeAllows(scope.(uint), patient.BranchID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "patient belongs to another branch"})
		return
	}

	paidAt := time.Now()
	if input.PaidAt != "" {
		parsed, err := time.Parse(time.RFC3339, input.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paid_at must be RFC3339"})
			return
		}
		paidAt = parsed
	}

	userID, _ := Token.ExtractTokenID(c)

	payment := Models.Payment{
		PatientID:   patient.ID,
		BranchID:    patient.BranchID, // always the patient's branch, never the caller's
		Amount:      input.Amount,
		PaidAt:      paidAt,
		Method:      input.Method,
		ServiceType: input.ServiceType,
		RecordedBy:  userID,
	}

	if err := Models.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.RefreshEvent)

	if patient.IsVerified && patient.Phone != "" {
		message := fmt.Sprintf(
			"Dear %s, we received your payment of %d IQD. Thank you.",
			patient.Name, payment.Amount,
		)
		if err := Whatsapp.SendMessage(patient.Phone, message); err != nil {
			log.Printf("Failed to send payment receipt to %s: %v", patient.Name, err)
		}
	}

	go notifyBranchStaff(patient.BranchID, payment)

	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded successfully", "payment_id": payment.ID})
}

func notifyBranchStaff(branchID uint, payment Models.Payment) {
	fcms, err := Models.GetBranchFCMs(branchID)
	if err != nil || len(fcms) == 0 {
		return
	}
	err = FirebaseMessaging.SendMessage(Models.NotificationRequest{
		Tokens: fcms,
		Title:  "Payment recorded",
		Body:   fmt.Sprintf("%d IQD received for patient %d", payment.Amount, payment.PatientID),
	})
	if err != nil {
		log.Printf("Failed to push payment notification: %v", err)
	}
}

func FetchPatientPayments(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payments []Models.Payment
	if err := Models.DB.Model(&Models.Payment{}).Where("patient_id = ?", input.PatientID).Order("paid_at asc").Find(&payments).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func DeletePayment(c *gin.Context) {
	var input struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Delete(&Models.Payment{}, "id = ?", input.ID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.RefreshEvent)
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
