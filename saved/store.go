// Package saved persists bookmarked lobby items and match reminders
package saved

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when an id has no saved item
var ErrNotFound = errors.New("saved item not found")

// MemoryDSN selects a private in-memory sqlite database
const MemoryDSN = ":memory:"

// Store is the saved-items and reminders store
// Safe for concurrent use; gorm serializes through its connection pool
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to dsn and migrates the schema
// A postgres DSN that fails to connect falls back to in-memory sqlite; anything else is a sqlite path
func Open(dsn string, log zerolog.Logger) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	var db *gorm.DB
	var err error
	if isPostgresDSN(dsn) {
		db, err = openPostgres(dsn)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to Postgres, falling back to in-memory SQLite")
			dsn = MemoryDSN
		}
	}
	if db == nil {
		db, err = openSqlite(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %q: %w", dsn, err)
		}
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("Saved store ready")
	return &Store{db: db, log: log}, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func openPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(4)
	return db, nil
}

func openSqlite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// Each :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode = MEMORY;").Error; err != nil {
		return nil, fmt.Errorf("error setting PRAGMA: %w", err)
	}
	return db, nil
}

// Driver returns the active gorm dialect name
func (s *Store) Driver() string {
	return s.db.Dialector.Name()
}

// Save stores item; saving an id that already exists is a no-op
// Returns true when a row was created
func (s *Store) Save(ctx context.Context, item Item) (bool, error) {
	if item.ID == "" {
		return false, fmt.Errorf("save: empty id")
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&item)
	if res.Error != nil {
		return false, fmt.Errorf("failed to save item %s: %w", item.ID, res.Error)
	}
	created := res.RowsAffected > 0
	if created {
		s.log.Info().Str("id", item.ID).Str("kind", string(item.Kind)).Msg("Item saved")
	}
	return created, nil
}

// Get returns the saved item with id
func (s *Store) Get(ctx context.Context, id string) (Item, error) {
	var item Item
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Item{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return item, nil
}

// Remove deletes the item with id
func (s *Store) Remove(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Item{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.log.Info().Str("id", id).Msg("Item removed")
	return nil
}

// Has reports whether id is saved
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Item{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up item %s: %w", id, err)
	}
	return n > 0, nil
}

// List returns all saved items, oldest first
func (s *Store) List(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ToggleReminder flips the reminder for matchID and returns the new state
func (s *Store) ToggleReminder(ctx context.Context, matchID string) (bool, error) {
	var on bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("match_id = ?", matchID).Delete(&Reminder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		on = true
		return tx.Create(&Reminder{MatchID: matchID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle reminder %s: %w", matchID, err)
	}
	s.log.Info().Str("match", matchID).Bool("on", on).Msg("Reminder toggled")
	return on, nil
}

// HasReminder reports whether matchID has a reminder
func (s *Store) HasReminder(ctx context.Context, matchID string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Reminder{}).Where("match_id = ?", matchID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up reminder %s: %w", matchID, err)
	}
	return n > 0, nil
}

// Reminders returns all match ids with a reminder
func (s *Store) Reminders(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&Reminder{}).Order("match_id").Pluck("match_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return ids, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
