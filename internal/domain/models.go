// Package domain defines the persistence models for the prize campaign:
// gifts, users, redeemable codes, and the winners ledger. These types are
// mapped with GORM and form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Gift represents a catalog item that a winning code can be exchanged for.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Name: display name of the gift (unique within the catalog).
//   - Description: free-text description shown in the admin UI.
//   - Quantity: remaining stock for this gift.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Gift struct {
	ID          uint           `json:"id"          gorm:"primaryKey"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	Quantity    int            `json:"quantity"    gorm:"not null;default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Gift.
func (Gift) TableName() string { return "gifts" }

// User represents a campaign participant who redeemed at least one code.
// Authentication and password storage are handled by a separate service;
// only the profile summary needed by the admin views lives here.
type User struct {
	ID        uint           `json:"id"         gorm:"primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	Email     string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Code represents a redeemable campaign code. The value is stored exactly
// as it was imported (historical batches used inconsistent casing and
// hyphenation), optionally linked to the gift it was exchanged for and the
// user who redeemed it.
//
// Winner status is intentionally NOT a column: whether a code is a winner
// is computed at read time by matching its value against the winners
// ledger (see the codes package and ClassificationService), so formatting
// drift between the two tables can never leave a stale flag behind.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Value: the raw code string as imported (unique).
//   - Used: whether the code has been redeemed.
//   - UsedAt: redemption timestamp; nil while unused.
//   - GiftID / Gift: optional link to the exchanged gift.
//   - UserID / User: optional link to the redeeming user.
type Code struct {
	ID        uint           `json:"id"        gorm:"primaryKey"`
	Value     string         `json:"value"     gorm:"type:varchar(64);not null;uniqueIndex"`
	Used      bool           `json:"used"      gorm:"not null;default:false;index"`
	UsedAt    *time.Time     `json:"used_at,omitempty" gorm:"index"`
	GiftID    *uint          `json:"gift_id,omitempty" gorm:"index"`
	UserID    *uint          `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`

	// Gift is the catalog item this code was exchanged for, when any.
	Gift *Gift `json:"gift,omitempty" gorm:"foreignKey:GiftID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	// User is the participant who redeemed this code, when any.
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for Code.
func (Code) TableName() string { return "codes" }

// Winner is an entry in the independently maintained winners ledger: a code
// value asserted to have won a prize. Values arrive in whatever format the
// campaign operator pasted in, so several rows may spell the same logical
// code differently; classification treats them as equivalent.
type Winner struct {
	ID        uint           `json:"id"         gorm:"primaryKey"`
	Value     string         `json:"value"      gorm:"type:varchar(64);not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Winner.
func (Winner) TableName() string { return "winners" }
