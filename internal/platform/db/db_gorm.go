package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	auctionadapters "auction_backend/internal/feature/auction/adapters"
	authadapters "auction_backend/internal/feature/auth/adapters"
	"auction_backend/internal/feature/auth/domain/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval is the wait between connection attempts.
const retryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	Driver         string        `env:"DB_DRIVER" envDefault:"postgres"`
	URL            string        `env:"DATABASE_URL"`
	User           string        `env:"DB_USER"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME"`
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           string        `env:"DB_PORT" envDefault:"5432"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	InstanceName   string        `env:"INSTANCE_CONNECTION_NAME"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"auction.db"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN builds the PostgreSQL DSN. DATABASE_URL wins over the individual
// settings, and a Cloud SQL instance name wins over host and port.
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", host, cfg.User, cfg.Password, cfg.Name)
	if cfg.InstanceName == "" {
		dsn += " port=" + port
	}
	return dsn + fmt.Sprintf(" sslmode=%s TimeZone=UTC", cfg.SSLMode)
}

// ConnectWithRetry opens the database, retrying until timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, retryInterval, opener)
}

func connectWithRetry(dsn string, timeout, interval time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", interval)
		time.Sleep(interval)
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func openSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite has no row locks, so writers are serialised on one connection.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}

// OpenDB connects with the configured driver. SQLite databases are always
// migrated; PostgreSQL only when RUN_MIGRATIONS is set.
func OpenDB(cfg Config) (*gorm.DB, error) {
	var (
		db      *gorm.DB
		err     error
		migrate = cfg.RunMigrations
	)

	switch cfg.Driver {
	case DriverSQLite:
		db, err = openSQLite(cfg.SQLitePath)
		migrate = true
	case DriverPostgres, "":
		db, err = ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, openPostgres)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("migrate: nil db")
	}
	models := []any{&entity.User{}, &authadapters.SessionModel{}}
	models = append(models, auctionadapters.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
