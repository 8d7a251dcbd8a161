// Package users owns the user directory: the persisted user records,
// their plan/limits relations, and the single read operation the
// analytics engine consumes. Records returned by GetAllUsers arrive
// with plan and limits references already resolved, so downstream
// aggregation never touches the database.
package users

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// User is one account in the directory. Analytics treats a fetched
// User as an immutable snapshot value for the duration of one report.
type User struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Email string `gorm:"uniqueIndex;not null"`

	IsVerified              bool `gorm:"not null;default:false"`
	IsTrialActive           bool `gorm:"not null;default:false"`
	UpworkProfileIsVerified bool `gorm:"not null;default:false"`

	// Raw Upwork integration payload as delivered by the sync job.
	// Empty string means the account has never connected Upwork.
	UpworkData string `gorm:"type:text"`

	// DateCreated is nullable on purpose: legacy imports carry rows
	// without it, and those rows are excluded from windowed
	// aggregation rather than rejected.
	DateCreated    sql.NullTime `gorm:"column:date_created;type:datetime"`
	LastActivityAt sql.NullTime `gorm:"column:updated_at;type:datetime"`

	PlanID sql.NullInt64
	Plan   *Plan `gorm:"foreignKey:PlanID"`

	LimitsID sql.NullInt64
	Limits   *UserLimits `gorm:"foreignKey:LimitsID"`

	Feeds []Feed    `gorm:"foreignKey:UserID"`
	RSS   []RSSFeed `gorm:"foreignKey:UserID"`
}

// Plan is a subscription tier. Referenced by users, never owned by them.
type Plan struct {
	ID    uint    `gorm:"primaryKey"`
	Name  string  `gorm:"column:plan_name;uniqueIndex;not null"`
	Price float64 `gorm:"column:plan_price;not null;default:0"`

	FeedLimit int `gorm:"not null;default:0"`
	RSSLimit  int `gorm:"not null;default:0"`
}

// UserLimits carries per-account overrides of the plan limits.
type UserLimits struct {
	ID               uint `gorm:"primaryKey"`
	FeedsLimit       int  `gorm:"not null;default:0"`
	RSSLimit         int  `gorm:"not null;default:0"`
	ValidationsLimit int  `gorm:"not null;default:0"`
}

// Feed is a job feed an account watches on Upwork.
type Feed struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Title     string `gorm:"not null"`
	Query     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// RSSFeed is an external RSS source an account pulls jobs from.
type RSSFeed struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	URL       string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName keeps the historical table name from the original service.
func (RSSFeed) TableName() string {
	return "rss_feeds"
}

// HasUpworkData reports whether the account carries a synced Upwork
// payload.
func (u *User) HasUpworkData() bool {
	return u.UpworkData != "" && u.UpworkData != "null"
}

// HasPlan reports whether the plan reference resolved to a named plan.
func (u *User) HasPlan() bool {
	return u.Plan != nil && u.Plan.Name != ""
}

// ErrNoUsersFound is returned when the directory holds no eligible users.
var ErrNoUsersFound = errors.New("no users found")

// GetAllUsers returns every eligible user with plan, limits, feeds and
// rss relations resolved. Test and internal accounts on the blacklist
// are excluded at the query level so they never skew a report.
func GetAllUsers(db *gorm.DB) ([]User, error) {
	var list []User
	err := db.
		Where("email NOT IN ?", BlacklistedEmails).
		Preload("Plan").
		Preload("Limits").
		Preload("Feeds").
		Preload("RSS").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	if len(list) == 0 {
		return nil, ErrNoUsersFound
	}
	return list, nil
}

// FindByEmail retrieves a user by email, including the blacklisted ones.
func FindByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
