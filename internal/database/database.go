package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultRiskProfile is stored for users that never picked a profile.
const DefaultRiskProfile = "stable"

// ErrUserNotFound is returned by Find when no row exists for the id.
var ErrUserNotFound = errors.New("user not found")

type Database struct {
	db *gorm.DB
}

// Models

// User is the one row kept per Telegram user id.
type User struct {
	ID            int64  `gorm:"primaryKey;autoIncrement:false"`
	Username      string `gorm:"not null"`
	WalletAddress string `gorm:"not null"`
	RiskProfile   string `gorm:"not null;default:'stable';index"`
	IsSubscribed  bool   `gorm:"not null"`
	IsVerified    bool   `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// upsertable lists the columns Upsert may overwrite on conflict.
var upsertable = map[string]bool{
	"username":       true,
	"wallet_address": true,
	"risk_profile":   true,
	"is_subscribed":  true,
	"is_verified":    true,
}

func New(dbPath string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(dbPath, "postgres://") || strings.HasPrefix(dbPath, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Database connected (PostgreSQL)")
	} else {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}

		// SQLite has a single writer; one connection keeps concurrent
		// handlers from tripping over "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		log.Info().Str("path", dbPath).Msg("Database initialized (SQLite)")
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}

	return &Database{db: db}, nil
}

// Close releases the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// User operations

// Find returns the user row for id, or ErrUserNotFound.
func (d *Database) Find(ctx context.Context, id int64) (*User, error) {
	var user User
	err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a row for id built from defaults unless one already exists,
// and returns the stored row. An existing row is never modified.
func (d *Database) Create(ctx context.Context, id int64, defaults User) (*User, error) {
	row := defaults
	row.ID = id
	if row.RiskProfile == "" {
		row.RiskProfile = DefaultRiskProfile
	}

	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	return d.Find(ctx, id)
}

// Upsert writes user in a single statement. A missing row is inserted with
// every field of user; an existing row only has the named columns (plus
// updated_at) overwritten, so other columns keep their stored values.
// Conflict resolution: ON CONFLICT (id) DO UPDATE SET <columns>.
func (d *Database) Upsert(ctx context.Context, user *User, columns ...string) error {
	if len(columns) == 0 {
		return fmt.Errorf("upsert user %d: no columns to update", user.ID)
	}
	assign := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		if !upsertable[c] {
			return fmt.Errorf("upsert user %d: column %q is not updatable", user.ID, c)
		}
		assign = append(assign, c)
	}
	assign = append(assign, "updated_at")

	if user.RiskProfile == "" {
		user.RiskProfile = DefaultRiskProfile
	}

	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(assign),
		}).
		Create(user).Error
}

// Stats operations

// CountUsers returns the number of stored users
func (d *Database) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}

// CountByRiskProfile groups users by stored risk profile
func (d *Database) CountByRiskProfile(ctx context.Context) (map[string]int64, error) {
	type profileCount struct {
		RiskProfile string
		Count       int64
	}
	var rows []profileCount
	err := d.db.WithContext(ctx).Model(&User{}).
		Select("risk_profile, count(*) as count").
		Group("risk_profile").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.RiskProfile] = r.Count
	}
	return counts, nil
}
