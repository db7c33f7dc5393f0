// Command reconcile runs the end-of-day reconciliation pass: staff records
// still open are downgraded to Absent, and student sessions still open are
// deleted. Run it once per day after the last class hour, manually or from
// cron. Re-running for the same date is a no-op.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	date := flag.String("date", "", "date to reconcile as YYYY-MM-DD (default: today)")
	flag.Parse()

	target := *date
	if target == "" {
		target = time.Now().Format(attendance.DateLayout)
	} else if _, err := time.Parse(attendance.DateLayout, target); err != nil {
		log.Fatalf("invalid -date %q: %v", target, err)
	}

	_ = godotenv.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "face_attendance"),
		getEnv("DB_SSLMODE", "disable"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	reconciler := attendance.NewReconciler(attendance.NewRepository(db))
	summary := reconciler.Run(target)

	if summary.StaffErr != nil {
		log.Printf("staff reconciliation failed: %v", summary.StaffErr)
	} else {
		fmt.Printf("staff records marked absent: %d\n", summary.StaffMarkedAbsent)
	}
	if summary.StudentErr != nil {
		log.Printf("student reconciliation failed: %v", summary.StudentErr)
	} else {
		fmt.Printf("student sessions deleted: %d\n", summary.StudentsDeleted)
	}

	if summary.Err() != nil {
		os.Exit(1)
	}
}
