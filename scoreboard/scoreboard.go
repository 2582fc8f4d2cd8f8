package scoreboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one finished attempt.
type Run struct {
	ID       uuid.UUID `gorm:"type:text;primaryKey"`
	Score    int       `gorm:"index"`
	Distance float64
	// Scenes is how many scene changes the run reached.
	Scenes  int
	Seed    int64
	Source  string    `gorm:"size:32"`
	EndedAt time.Time `gorm:"index"`
}

// Store keeps run history in SQLite.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the database at path, creating it if needed. An empty
// path uses a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("scoreboard: open %s: %w", dsn, err)
	}
	if path == "" {
		// each connection to :memory: is a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("scoreboard: open %s: %w", dsn, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("scoreboard: migrate: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "scoreboard").Logger()}
	s.log.Debug().Str("path", dsn).Msg("scoreboard opened")
	return s, nil
}

// Record stores r, filling in the ID and end time when unset.
func (s *Store) Record(r Run) (Run, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}
	if err := s.db.Create(&r).Error; err != nil {
		return r, fmt.Errorf("scoreboard: record: %w", err)
	}
	s.log.Info().
		Str("run", r.ID.String()).
		Int("score", r.Score).
		Float64("distance", r.Distance).
		Int("scenes", r.Scenes).
		Msg("run recorded")
	return r, nil
}

// Best returns the highest scoring run, ties broken by distance. ok is false
// when nothing has been recorded.
func (s *Store) Best() (Run, bool, error) {
	var r Run
	err := s.db.Order("score desc").Order("distance desc").First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("scoreboard: best: %w", err)
	}
	return r, true, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	var runs []Run
	if err := s.db.Order("ended_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("scoreboard: recent: %w", err)
	}
	return runs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
