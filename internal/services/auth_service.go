// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/config"
	"github.com/javajoker/store-platform/internal/database"
	"github.com/javajoker/store-platform/internal/metrics"
	"github.com/javajoker/store-platform/internal/models"
	"github.com/javajoker/store-platform/internal/utils"
)

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	log       logrus.FieldLogger
	referrals *ReferralService
	metrics   *metrics.Metrics
}

type LoginRequest struct {
	MobileNo string `json:"mobile_no" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	MobileNo         string  `json:"mobile_no" validate:"required,min=10,max=15,mobile"`
	Username         string  `json:"username" validate:"required,notblank,max=50"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Password         string  `json:"password" validate:"required,min=6,max=72"`
	ReferralCodeUsed *string `json:"referral_code_used,omitempty"`
}

type RegisterResult struct {
	User            *models.User `json:"user"`
	ReferralApplied bool         `json:"referral_applied"`
	ReferralError   string       `json:"referral_error,omitempty"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger, referrals *ReferralService, m *metrics.Metrics) *AuthService {
	return &AuthService{
		db:        db,
		cfg:       cfg,
		log:       log.WithField("service", "auth"),
		referrals: referrals,
		metrics:   m,
	}
}

// Register creates the user and then, in a separate commit, applies the
// referral code. queryCode takes precedence over the payload code. A failed
// referral is reported in the result and never undoes the registration.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest, queryCode string) (*RegisterResult, error) {
	req.MobileNo = strings.TrimSpace(req.MobileNo)
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		req.Email = nil
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	db := s.db.WithContext(ctx)

	// Check if user already exists
	var count int64
	if err := db.Model(&models.User{}).Where("mobile_no = ?", req.MobileNo).Count(&count).Error; err != nil {
		return nil, persistenceError(err, "failed to check mobile number")
	}
	if count > 0 {
		return nil, apperror.New(apperror.CodeDuplicateIdentity, "mobile number already registered")
	}

	referralCode, err := s.referrals.GenerateReferralCode(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate referral code: %w", err)
	}
	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	usedCode := resolveReferralCode(queryCode, req.ReferralCodeUsed)

	user := &models.User{
		MobileNo:     req.MobileNo,
		Username:     req.Username,
		Email:        req.Email,
		OTP:          &otp,
		ReferralCode: referralCode,
	}
	if usedCode != "" {
		user.ReferredBy = &usedCode
	}

	// Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Save user
	if err := db.Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.CodeDuplicateIdentity, err, "mobile number or referral code already registered")
		}
		return nil, persistenceError(err, "failed to create user")
	}
	s.metrics.IncRegistration()

	logger := s.log.WithFields(logrus.Fields{"user_id": user.ID, "mobile_no": user.MobileNo})
	logger.Info("User registered")

	result := &RegisterResult{User: user}
	if usedCode == "" {
		return result, nil
	}

	applied, err := s.referrals.ApplyReferral(ctx, usedCode, user.ID)
	switch {
	case err != nil:
		logger.WithError(err).WithField("referral_code", usedCode).Error("Referral could not be applied")
		result.ReferralError = "referral could not be applied"
		s.metrics.IncReferral(metrics.ReferralFailed)
	case applied.Applied:
		result.ReferralApplied = true
		s.metrics.IncReferral(metrics.ReferralApplied)
	default:
		s.metrics.IncReferral(metrics.ReferralUnknown)
	}

	return result, nil
}

func resolveReferralCode(queryCode string, payloadCode *string) string {
	if code := strings.TrimSpace(queryCode); code != "" {
		return code
	}
	if payloadCode != nil {
		return strings.TrimSpace(*payloadCode)
	}
	return ""
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	// Find user by mobile number
	var user models.User
	if err := s.db.WithContext(ctx).Where("mobile_no = ?", strings.TrimSpace(req.MobileNo)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeInvalidCredentials, "invalid mobile number or password")
		}
		return nil, persistenceError(err, "failed to load user")
	}

	// Verify password
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperror.New(apperror.CodeInvalidCredentials, "invalid mobile number or password")
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.MobileNo, user.Username, user.IsAdmin, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("User logged in")

	return &AuthResponse{
		User:        &user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600, // Convert hours to seconds
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "user not found")
		}
		return nil, persistenceError(err, "failed to load user")
	}
	return &user, nil
}
