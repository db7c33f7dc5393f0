package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
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

func dsn() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "face_attendance"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsn()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	r := gin.Default()

	group := r.Group("/attendance")
	if err := attendance.RegisterAttendanceRoutes(group, attendance.Config{
		DB:            db,
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AutoMigrate:   true,
		SeedSchedule:  true,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}); err != nil {
		log.Fatalf("failed to register attendance routes: %v", err)
	}

	port := getEnv("PORT", "8080")
	log.Printf("starting server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
