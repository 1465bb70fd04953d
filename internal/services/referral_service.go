// internal/services/referral_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/config"
	"github.com/javajoker/store-platform/internal/database"
	"github.com/javajoker/store-platform/internal/models"
	"github.com/javajoker/store-platform/internal/utils"
)

type ReferralService struct {
	db  *gorm.DB
	cfg *config.Config
	log logrus.FieldLogger
}

type ReferralResult struct {
	Applied       bool `json:"applied"`
	ReferrerID    uint `json:"referrer_id,omitempty"`
	PointsAwarded int  `json:"points_awarded,omitempty"`
}

type ReferredUser struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

type ReferralSummary struct {
	ReferralCode   string         `json:"referral_code"`
	Points         int            `json:"points"`
	TotalReferrals int            `json:"total_referrals"`
	Referrals      []ReferredUser `json:"referrals"`
}

type LeaderboardEntry struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Points    int    `json:"points"`
	Referrals int64  `json:"referrals"`
}

func NewReferralService(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) *ReferralService {
	return &ReferralService{
		db:  db,
		cfg: cfg,
		log: log.WithField("service", "referral"),
	}
}

// GenerateReferralCode does not check the code against existing users; a
// collision is rejected by the unique index when the user is saved.
func (s *ReferralService) GenerateReferralCode(username string) (string, error) {
	return utils.GenerateReferralCode(username)
}

// ApplyReferral credits the owner of code and records the referral of
// newUserID, in one transaction. An unknown code is not an error: the result
// reports Applied=false and nothing is written.
//
// Calling it twice for the same user credits twice.
func (s *ReferralService) ApplyReferral(ctx context.Context, code string, newUserID uint) (*ReferralResult, error) {
	reward := s.cfg.Referral.RewardPoints
	result := &ReferralResult{}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var referrer models.User
		if err := tx.Where("referral_code = ?", code).First(&referrer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", referrer.ID).
			UpdateColumn("points", gorm.Expr("points + ?", reward)).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.Referral{ReferrerID: referrer.ID, NewUserID: newUserID}).Error; err != nil {
			return err
		}

		result.Applied = true
		result.ReferrerID = referrer.ID
		result.PointsAwarded = reward
		return nil
	})
	if err != nil {
		return nil, persistenceError(err, "failed to apply referral")
	}

	if result.Applied {
		s.log.WithFields(logrus.Fields{
			"referrer_id": result.ReferrerID,
			"new_user_id": newUserID,
			"points":      reward,
		}).Info("Referral applied")
	} else {
		s.log.WithField("referral_code", code).Info("Referral code not found, skipping")
	}
	return result, nil
}

func (s *ReferralService) Summary(ctx context.Context, userID uint) (*ReferralSummary, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "user not found")
		}
		return nil, persistenceError(err, "failed to load user")
	}

	var referrals []models.Referral
	if err := db.Preload("NewUser").
		Where("referrer_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&referrals).Error; err != nil {
		return nil, persistenceError(err, "failed to load referrals")
	}

	summary := &ReferralSummary{
		ReferralCode:   user.ReferralCode,
		Points:         user.Points,
		TotalReferrals: len(referrals),
		Referrals:      make([]ReferredUser, 0, len(referrals)),
	}
	for _, r := range referrals {
		summary.Referrals = append(summary.Referrals, ReferredUser{
			UserID:    r.NewUserID,
			Username:  r.NewUser.Username,
			Timestamp: r.Timestamp,
		})
	}
	return summary, nil
}

// Leaderboard ranks users by points. limit falls back to the configured
// default when it is not in 1..100.
func (s *ReferralService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = s.cfg.Referral.LeaderboardLimit
	}

	entries := []LeaderboardEntry{}
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.username, users.points, COUNT(referrals.id) AS referrals").
		Joins("LEFT JOIN referrals ON referrals.referrer_id = users.id").
		Group("users.id, users.username, users.points").
		Order("users.points DESC, users.id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, persistenceError(err, "failed to load leaderboard")
	}
	return entries, nil
}
