// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	MobileNo       string  `json:"mobile_no" gorm:"uniqueIndex:idx_users_mobile_no;size:15;not null"`
	Username       string  `json:"username" gorm:"size:50;not null"`
	Email          *string `json:"email" gorm:"size:100"`
	HashedPassword string  `json:"-" gorm:"size:255;not null"`
	IsAdmin        bool    `json:"is_admin" gorm:"default:false"`
	OTP            *string `json:"otp" gorm:"column:otp;size:6"`
	ReferralCode   string  `json:"referral_code" gorm:"uniqueIndex:idx_users_referral_code;size:20;not null"`
	ReferredBy     *string `json:"referred_by" gorm:"size:20"`
	Points         int     `json:"points" gorm:"not null;default:0"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
