// Package ledger keeps an append-only history of point changes in SQLite
// through gorm.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one award, penalty or capped award attempt. For applied entries
// Amount is the delta after clamping; for Capped entries it is the amount
// the daily cap turned away and the balance did not move.
type Entry struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"index;size:10"`
	Source    string `gorm:"index;size:16"`
	Amount    int
	Balance   int
	Reason    string
	Capped    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// DayTotal counts only applied entries in Earned and Spent.
type DayTotal struct {
	Date   string
	Earned int
	Spent  int
	Capped int
}

type Ledger struct {
	db *gorm.DB
}

// Open opens a SQLite database at dsn and migrates the entry table. gorm
// warnings go to w; pass nil to discard them.
func Open(dsn string, w io.Writer) (*Ledger, error) {
	if dsn == "" {
		dsn = "sprout-ledger.db"
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}

	dbLogger := logger.New(
		log.New(w, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (l *Ledger) Record(ctx context.Context, e Entry) error {
	if e.Date == "" || e.Source == "" {
		return errors.New("ledger: entry needs a date and source")
	}
	if e.Amount == 0 {
		return nil
	}
	if err := l.db.WithContext(ctx).Create(&e).Error; err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []Entry
	if err := l.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DailyTotals sums earned and spent points and counts capped attempts per
// date in [from, to], oldest first. Dates are YYYY-MM-DD so string comparison orders them.
func (l *Ledger) DailyTotals(ctx context.Context, from, to string) ([]DayTotal, error) {
	var out []DayTotal
	err := l.db.WithContext(ctx).
		Model(&Entry{}).
		Select("date, " +
			"SUM(CASE WHEN NOT capped AND amount > 0 THEN amount ELSE 0 END) AS earned, " +
			"SUM(CASE WHEN NOT capped AND amount < 0 THEN -amount ELSE 0 END) AS spent, " +
			"SUM(CASE WHEN capped THEN 1 ELSE 0 END) AS capped").
		Where("date >= ? AND date <= ?", from, to).
		Group("date").
		Order("date ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	return out, nil
}

func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir %q: %w", dir, err)
	}
	return nil
}
