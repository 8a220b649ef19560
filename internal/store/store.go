// Package store mirrors the in-memory roster and theme preference to a
// local sqlite file as two independently serialized records.
package store

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
)

// Storage keys. Fixed and well known; the roster key matches the
// original deployment's data so existing files load unchanged.
const (
	KeyUsers = "boko_users"
	KeyTheme = "theme"
)

// DefaultTheme is returned when no preference has been persisted yet
const DefaultTheme = "dark"

// Record is one serialized collection in the key-value table
type Record struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

// Store reads and writes the two persisted records
type Store struct {
	db  *gorm.DB
	log *logrus.Logger
}

// New opens (or creates) the sqlite file at path and ensures the
// records table exists.
func New(path string, log *logrus.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// SaveRoster serializes the full user roster under the roster key.
func (s *Store) SaveRoster(users []domain.User) error {
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.put(KeyUsers, b)
}

// LoadRoster returns the persisted roster. A missing or corrupt record
// yields an empty roster, never an error; the system starts fresh.
func (s *Store) LoadRoster() []domain.User {
	b, ok := s.get(KeyUsers)
	if !ok {
		return []domain.User{}
	}
	var users []domain.User
	if err := json.Unmarshal(b, &users); err != nil {
		s.log.WithField("key", KeyUsers).Warn("Corrupt roster record, starting with empty roster: ", err)
		return []domain.User{}
	}
	return users
}

// SaveTheme persists the theme preference.
func (s *Store) SaveTheme(theme string) error {
	return s.put(KeyTheme, []byte(theme))
}

// LoadTheme returns the persisted theme preference, or the default when
// none has been saved.
func (s *Store) LoadTheme() string {
	b, ok := s.get(KeyTheme)
	if !ok || len(b) == 0 {
		return DefaultTheme
	}
	return string(b)
}

func (s *Store) put(key string, value []byte) error {
	rec := Record{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (s *Store) get(key string) ([]byte, bool) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithField("key", key).Warn("Failed to read record: ", err)
		}
		return nil, false
	}
	return rec.Value, true
}
