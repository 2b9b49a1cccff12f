package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/opsdesk/backend/internal/application/mailroom"
	"github.com/opsdesk/backend/internal/domain/setting"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingPollLock implements mailroom.PollLock on top of the settings
// table. The running flag and the start timestamp are ordinary setting
// rows, so every process that shares the database shares the lock.
// The running row is read FOR UPDATE inside a transaction; concurrent
// acquirers serialize on that row lock.
type SettingPollLock struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSettingPollLock creates a poll lock backed by the settings table
func NewSettingPollLock(db *gorm.DB, logger *zap.Logger) *SettingPollLock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingPollLock{db: db, logger: logger}
}

// Acquire takes the poll lock. A held lock whose start timestamp is
// older than staleAfter is treated as abandoned and stolen. Returns
// false when another run holds a fresh lock.
func (l *SettingPollLock) Acquire(ctx context.Context, staleAfter time.Duration) (bool, error) {
	acquired := false

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var running setting.Setting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&running, "key = ?", setting.KeyMailPollRunning).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil && running.Value == "1" {
			startedAt, ok := lockStartedAt(tx)
			if ok && time.Since(startedAt) <= staleAfter {
				return nil
			}
			l.logger.Warn("stealing stale mail poll lock",
				zap.Time("started_at", startedAt),
				zap.Duration("stale_after", staleAfter))
		}

		if err := upsertSetting(tx, setting.KeyMailPollRunning, "1"); err != nil {
			return err
		}
		if err := upsertSetting(tx, setting.KeyMailPollStartedAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}
		acquired = true
		return nil
	})

	return acquired, err
}

// Release frees the lock and records when the poll last ran
func (l *SettingPollLock) Release(ctx context.Context) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, setting.KeyMailPollRunning, "0"); err != nil {
			return err
		}
		return upsertSetting(tx, setting.KeyMailPollLastRunAt, time.Now().UTC().Format(time.RFC3339))
	})
}

// ClearStale force-clears a held lock whose start timestamp is older
// than the cutoff and reports whether one was cleared. Callers run it
// on a timer to recover from polls that died without releasing.
func (l *SettingPollLock) ClearStale(ctx context.Context, olderThan time.Duration) (bool, error) {
	cleared := false

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var running setting.Setting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&running, "key = ?", setting.KeyMailPollRunning).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if running.Value != "1" {
			return nil
		}

		startedAt, ok := lockStartedAt(tx)
		if ok && time.Since(startedAt) <= olderThan {
			return nil
		}

		if err := upsertSetting(tx, setting.KeyMailPollRunning, "0"); err != nil {
			return err
		}
		cleared = true
		l.logger.Warn("cleared stale mail poll lock",
			zap.Time("started_at", startedAt),
			zap.Duration("older_than", olderThan))
		return nil
	})

	return cleared, err
}

// lockStartedAt reads the poll start timestamp inside the caller's
// transaction. A missing or unparsable row reports false, which makes
// the caller treat the lock as stale.
func lockStartedAt(tx *gorm.DB) (time.Time, bool) {
	var started setting.Setting
	if err := tx.First(&started, "key = ?", setting.KeyMailPollStartedAt).Error; err != nil {
		return time.Time{}, false
	}
	startedAt, err := time.Parse(time.RFC3339, started.Value)
	if err != nil {
		return time.Time{}, false
	}
	return startedAt, true
}

// upsertSetting writes key to value through the key's unique index so
// concurrent writers cannot conflict
func upsertSetting(tx *gorm.DB, key, value string) error {
	s, err := setting.NewSetting(key, value)
	if err != nil {
		return err
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(s).Error
}

// Ensure SettingPollLock implements mailroom.PollLock
var _ mailroom.PollLock = (*SettingPollLock)(nil)
