package Routes

import (
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Controllers"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Middleware"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/SSE"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Whatsapp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.Register)
		public.POST("/register/Branch", Controllers.RegisterBranch)
		public.POST("/SaveFcmToken", Controllers.SaveFcmToken)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetBranchScope())
	{

		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.POST("/Logout", Controllers.Logout)
		authorized.POST("/DeleteUser", Controllers.DeleteUser)

		// Patient-related routes
		authorized.GET("/FetchPatients", Controllers.FetchPatients)
		authorized.POST("/FetchPatientFilesURLs", Controllers.FetchPatientFilesURLs)
		authorized.POST("/UploadPatientRecord", Controllers.UploadPatientRecord)
		authorized.POST("/DeletePatientRecord", Controllers.DeletePatientRecord)
		authorized.POST("/UpdatePatient", Controllers.UpdatePatient)
		authorized.POST("/CreatePatient", Controllers.CreatePatient)
		authorized.POST("/DeletePatient", Controllers.DeletePatient)

		// Payment-related routes
		authorized.POST("/AddPayment", Controllers.AddPayment)
		authorized.POST("/FetchPatientPayments", Controllers.FetchPatientPayments)
		authorized.POST("/DeletePayment", Middleware.PermissionCheckManager(), Controllers.DeletePayment)

		// Expense-related routes
		authorized.POST("/AddExpense", Controllers.AddExpense)
		authorized.GET("/FetchExpenses", Controllers.FetchExpenses)
		authorized.POST("/EditExpense", Middleware.PermissionCheckManager(), Controllers.EditExpense)
		authorized.POST("/DeleteExpense", Middleware.PermissionCheckManager(), Controllers.DeleteExpense)
		authorized.GET("/FetchExpenseCategories", Controllers.FetchExpenseCategories)

		// Branch-related routes
		authorized.GET("/FetchBranches", Controllers.FetchBranches)
		authorized.POST("/AddBranch", Middleware.PermissionCheckManager(), Controllers.AddBranch)
		authorized.POST("/EditBranch", Middleware.PermissionCheckManager(), Controllers.EditBranch)
		authorized.POST("/DeleteBranch", Middleware.PermissionCheckManager(), Controllers.DeleteBranch)

		// Report routes
		authorized.GET("/Reports/Summary", Controllers.GetSummary)
		authorized.GET("/Reports/Debtors", Controllers.GetDebtors)
		authorized.GET("/Reports/MonthlyTrend", Controllers.GetMonthlyTrend)
		authorized.GET("/Reports/ServiceProfitability", Controllers.GetServiceProfitability)
		authorized.GET("/Reports/BranchComparison", Middleware.PermissionCheckManager(), Controllers.GetBranchComparison)

		// Export-related routes
		authorized.GET("/Reports/Debtors/Excel", Controllers.ExportDebtorsExcel)
		authorized.GET("/Reports/MonthlyTrend/Excel", Controllers.ExportTrendExcel)

		// WhatsApp-related routes
		authorized.GET("/CheckWhatsAppLogin", Whatsapp.CheckLogin)
		authorized.GET("/GetWhatsAppQRCode", Whatsapp.GetQRCode)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Static file serving
	authorized.Static("/PatientRecords", "./PatientRecords")
	router.Static("/Web", "./Static")
}
