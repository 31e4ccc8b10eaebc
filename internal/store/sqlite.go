package store

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sessionEntry is the KV row backing the sqlite binding.
type sessionEntry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (sessionEntry) TableName() string {
	return "session_entries"
}

// SQLite persists session keys in an embedded sqlite database, the
// durable local store used by default.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens (and migrates) the sqlite-backed store at path.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, unavailable("open", path, err)
	}
	if err := db.AutoMigrate(&sessionEntry{}); err != nil {
		return nil, unavailable("migrate", path, err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var entry sessionEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", unavailable("get", key, err)
	}
	return entry.Value, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).
		Exec(`INSERT INTO session_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, time.Now().UTC()).
		Error
	if err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&sessionEntry{}, "key = ?", key).Error
	if err != nil {
		return unavailable("remove", key, err)
	}
	return nil
}

// Ping reports whether the sqlite handle is healthy.
func (s *SQLite) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return unavailable("ping", "", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("ping", "", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
