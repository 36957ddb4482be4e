package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/types"
)

type DatabaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewDatabaseService opens the store selected by dbURL. Postgres URLs go to
// the postgres driver; sqlite URLs (the default, matching a local
// development database file) and bare paths go to the sqlite driver.
func NewDatabaseService(dbURL string, log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")

	dialector, err := dialectorFor(dbURL)
	if err != nil {
		return nil, err
	}

	serviceLog.Info("Connecting to database...")
	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DatabaseService{db: db, log: serviceLog}, nil
}

func dialectorFor(dbURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return postgres.Open(dbURL), nil
	case strings.HasPrefix(dbURL, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dbURL, "sqlite://")), nil
	case dbURL == "":
		return nil, fmt.Errorf("empty database url")
	default:
		return sqlite.Open(dbURL), nil
	}
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Email{},
		&types.PhoneNumber{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}

	// Sqlite cannot add constraints after table creation; the delete
	// operations issue the cascade explicitly either way, so the constraint
	// is declared only where the engine supports it.
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}

	s.log.Info("Configuring foreign key relationships...")
	for _, stmt := range []struct {
		table, constraint string
	}{
		{"email", "fk_email_user_id"},
		{"phone_number", "fk_phone_number_user_id"},
	} {
		if err := s.db.Exec(fmt.Sprintf(`
			ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q
		`, stmt.table, stmt.constraint)).Error; err != nil {
			return fmt.Errorf("failed to drop %s: %w", stmt.constraint, err)
		}
		if err := s.db.Exec(fmt.Sprintf(`
			ALTER TABLE %q
			ADD CONSTRAINT %q
			FOREIGN KEY ("user_id")
			REFERENCES "user"("id")
			ON DELETE CASCADE
		`, stmt.table, stmt.constraint)).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", stmt.constraint, err)
		}
	}
	return nil
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}

func (s *DatabaseService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
