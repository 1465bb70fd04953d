// internal/models/referral.go
package models

import "time"

// Referral records that NewUserID registered with ReferrerID's code.
// Rows are written once and never updated.
type Referral struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ReferrerID uint      `json:"referrer_id" gorm:"not null;index"`
	NewUserID  uint      `json:"new_user_id" gorm:"not null;index"`
	Timestamp  time.Time `json:"timestamp" gorm:"autoCreateTime"`

	// Relationships
	Referrer User `json:"-" gorm:"foreignKey:ReferrerID"`
	NewUser  User `json:"new_user,omitempty" gorm:"foreignKey:NewUserID"`
}
