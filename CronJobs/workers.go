package CronJobs

import (
	"fmt"
	"log"
	"os"

	"github.com/yasirsaadi/bionic-centers-manager-sub001/Models"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Reports"
	"github.com/yasirsaadi/bionic-centers-manager-sub001/Whatsapp"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/go-co-op/gocron"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

const lastBackupMarker = "last_backup_date"

// BackupWorker exports the patient table once per clinic-local day and mails
// it out, and sends a weekly WhatsApp sweep to debtors.
type BackupWorker struct {
	DB       *gorm.DB
	Engine   *Reports.Engine
	Bucketer *Reports.TimeBucketer
}

// NewBackupWorker creates a new backup worker.
func NewBackupWorker(db *gorm.DB, engine *Reports.Engine, bucketer *Reports.TimeBucketer) *BackupWorker {
	return &BackupWorker{
		DB:       db,
		Engine:   engine,
		Bucketer: bucketer,
	}
}

// StartCron starts the scheduled jobs in the clinic zone, so the weekly sweep
// fires on clinic days, not host days. The backup check runs every 30
// minutes; the marker guarantees at most one successful export per local day
// even when the trigger fires repeatedly or the process restarts.
func (w *BackupWorker) StartCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(w.Bucketer.Location)

	scheduler.Every(30).Minutes().Do(func() {
		log.Println("Running daily backup check...")
		if err := w.RunDailyBackup(); err != nil {
			log.Printf("Error running daily backup: %v", err)
		}
	})

	scheduler.Every(1).Week().Do(func() {
		log.Println("Running debtor reminder sweep...")
		if err := w.SendDebtorReminders(); err != nil {
			log.Printf("Error sending debtor reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Backup cron jobs started")

	return scheduler
}

// RunDailyBackup exports the patient table unless today's export already
// succeeded. The marker is written only after the mail goes out, so a failed
// send is retried on the next tick.
func (w *BackupWorker) RunDailyBackup() error {
	today := w.Bucketer.Today().String()

	lastBackup, err := Models.GetMarker(lastBackupMarker)
	if err != nil {
		return fmt.Errorf("failed to read backup marker: %w", err)
	}
	if lastBackup == today {
		return nil
	}

	filename, err := w.exportPatients(today)
	if err != nil {
		return fmt.Errorf("failed to export patients: %w", err)
	}

	if err := w.sendBackupEmail(filename, today); err != nil {
		return fmt.Errorf("failed to email backup: %w", err)
	}

	if err := Models.SetMarker(lastBackupMarker, today); err != nil {
		return fmt.Errorf("failed to persist backup marker: %w", err)
	}

	log.Printf("Daily backup for %s completed", today)
	return nil
}

func (w *BackupWorker) exportPatients(date string) (string, error) {
	var patients []Models.Patient
	if err := w.DB.Model(&Models.Patient{}).Find(&patients).Error; err != nil {
		return "", err
	}

	headers := map[string]string{
		"A1": "ID",
		"B1": "Name",
		"C1": "Phone",
		"D1": "Branch",
		"E1": "Service",
		"F1": "Total Cost",
		"G1": "Created",
	}
	file := excelize.NewFile()
	sheet := "Patients"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i, patient := range patients {
		rowCount := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), patient.ID)
		file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), patient.Name)
		file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), patient.Phone)
		file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), patient.BranchID)
		file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), patient.ServiceType)
		file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), patient.TotalCost)
		file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), patient.CreatedAt.Format("2006-01-02"))
	}

	filename := fmt.Sprintf("./Backups/Patients-%s.xlsx", date)
	if err := os.MkdirAll("./Backups", os.ModePerm); err != nil {
		return "", err
	}
	if err := file.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}

func (w *BackupWorker) sendBackupEmail(filename, date string) error {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	recipient := os.Getenv("BACKUP_RECIPIENT")
	if host == "" || recipient == "" {
		log.Println("SMTP not configured, backup kept on disk only")
		return nil
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", user)
	mail.SetHeader("To", recipient)
	mail.SetHeader("Subject", fmt.Sprintf("Patient table backup %s", date))
	mail.SetBody("text/plain", "Attached is the daily patient table export.")
	mail.Attach(filename)

	dialer := gomail.NewDialer(host, 587, user, password)
	return dialer.DialAndSend(mail)
}

// SendDebtorReminders messages every debtor with an outstanding balance,
// using the same debtor report the dashboard shows.
func (w *BackupWorker) SendDebtorReminders() error {
	debtors, err := w.Engine.GetDebtors(Reports.Filter{})
	if err != nil {
		return fmt.Errorf("failed to compute debtor list: %w", err)
	}

	for _, debtor := range debtors {
		if debtor.Phone == "" {
			continue
		}

		message := fmt.Sprintf(
			"Dear %s, you have an outstanding balance of %d IQD. "+
				"Please contact your branch to arrange payment.",
			debtor.Name, debtor.Remaining,
		)

		if err := Whatsapp.SendMessage(debtor.Phone, message); err != nil {
			log.Printf("Failed to send reminder to %s: %v", debtor.Name, err)
			continue
		}

		log.Printf("Reminder sent to %s for %d IQD", debtor.Name, debtor.Remaining)
	}

	return nil
}
