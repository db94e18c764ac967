package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the storage handle for the configured driver. The returned
// *gorm.DB owns a connection pool and is safe for concurrent use; every
// repository operation acquires its own transactional session from it.
func Connect(driver, sqlitePath string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return ConnectSQLite(sqlitePath)
	case "postgres":
		return ConnectPostgres()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ConnectPostgres connects using POSTGRES_* environment variables, retrying
// while the database comes up.
func ConnectPostgres() (*gorm.DB, error) {
	_ = godotenv.Load()

	dbUser := os.Getenv("POSTGRES_USER")
	dbPassword := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")
	dbSSLMode := os.Getenv("POSTGRES_SSLMODE")
	dbTimeZone := os.Getenv("POSTGRES_TIMEZONE")

	if dbUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER environment variable not set")
	}
	if dbPassword == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable not set")
	}
	if dbName == "" {
		return nil, fmt.Errorf("POSTGRES_DB environment variable not set")
	}

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}
	if dbTimeZone == "" {
		dbTimeZone = "UTC"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbHost, dbUser, dbPassword, dbName, dbPort, dbSSLMode, dbTimeZone,
	)

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = open(postgres.Open(dsn))
		if err == nil {
			return db, nil
		}
		log.Printf("postgres connection failed (%d/10): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
}

// ConnectSQLite opens a file-backed SQLite store. Used as the default local
// store and by the test suites. Foreign-key enforcement is off by default in
// SQLite, so it is switched on explicitly.
func ConnectSQLite(path string) (*gorm.DB, error) {
	return open(sqlite.Open(path + "?_foreign_keys=on"))
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	// TranslateError maps driver unique-violation errors to
	// gorm.ErrDuplicatedKey, which the repositories rely on for
	// conflict-tolerant get-or-create.
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// Close closes the underlying connection pool gracefully.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
