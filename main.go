package main

import (
	"os"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Controllers"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/CronJobs"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/FirebaseMessaging"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Reports"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Routes"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()
	Reports.Setup()
	Controllers.SetupReports()

	if os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH") != "" {
		FirebaseMessaging.Setup()
	}
	go Whatsapp.Listen()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://manager.bioniccenters.com", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	backupWorker := CronJobs.NewBackupWorker(
		Models.DB,
		Reports.NewEngine(Models.NewLedger(Models.DB), Reports.Bucketer),
		Reports.Bucketer,
	)
	backupWorker.StartCron()

	router.Run(":3005")
}
