package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL GUEST DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all guest registrations")
	fmt.Println("  - Delete all employees and payslips")
	fmt.Println("  - Delete the audit log")
	fmt.Println("  - Reset all rooms to AVAILABLE")
	fmt.Println("  - Reset the admin PIN to 12345")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	// Database connection
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "kegama_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting database...")

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payslips",
		"employees",
		"audit_log",
		"guest_registrations",
		"admin_settings",
	}

	for _, table := range tables {
		_, err = tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  ✓ Cleared %s\n", table)
	}

	_, err = tx.Exec(ctx, "UPDATE rooms SET status = 'AVAILABLE'")
	if err != nil {
		log.Fatalf("Failed to reset rooms: %v\n", err)
	}
	fmt.Println("  ✓ Reset rooms to AVAILABLE")

	// Re-seed the settings singleton with the default PIN
	hash, err := bcrypt.GenerateFromPassword([]byte("12345"), 8)
	if err != nil {
		log.Fatalf("Failed to hash default PIN: %v\n", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO admin_settings (id, pin_hash, maintenance_mode, form_access_code, updated_at)
		VALUES (1, $1, FALSE, '', NOW())`,
		string(hash),
	)
	if err != nil {
		log.Fatalf("Failed to seed settings: %v\n", err)
	}
	fmt.Println("  ✓ Reset admin PIN")

	err = tx.Commit(ctx)
	if err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("✅ Database reset successful!")
	fmt.Println()
	fmt.Println("Default PIN: 12345")
	fmt.Println()
	fmt.Println("Database is now ready for testing!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
