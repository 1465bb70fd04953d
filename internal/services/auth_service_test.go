package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/models"
	"github.com/javajoker/store-platform/internal/utils"
)

var ctxBG = context.Background()

type AuthServiceTestSuite struct {
	serviceSuite
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegisterWithoutReferralCode() {
	res, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: "0771234567", Username: "alice", Password: "secret123"}, "")
	s.Require().NoError(err)

	s.False(res.ReferralApplied)
	s.Empty(res.ReferralError)
	s.Nil(res.User.ReferredBy)
	s.Zero(res.User.Points)
	s.Regexp(`^ALI[A-Z0-9]{4}$`, res.User.ReferralCode)
	s.Require().NotNil(res.User.OTP)
	s.Regexp(`^[0-9]{6}$`, *res.User.OTP)
	s.Zero(s.count(&models.Referral{}))
}

func (s *AuthServiceTestSuite) TestRegisterWithValidReferralCode() {
	referrer := s.registerUser("0770000001", "bob")
	code := referrer.ReferralCode

	res, err := s.auth.Register(ctxBG, &RegisterRequest{
		MobileNo: "0770000002", Username: "carol", Password: "secret123", ReferralCodeUsed: &code,
	}, "")
	s.Require().NoError(err)
	s.True(res.ReferralApplied)
	s.Require().NotNil(res.User.ReferredBy)
	s.Equal(code, *res.User.ReferredBy)

	var referrals []models.Referral
	s.Require().NoError(s.db.Find(&referrals).Error)
	s.Require().Len(referrals, 1)
	s.Equal(referrer.ID, referrals[0].ReferrerID)
	s.Equal(res.User.ID, referrals[0].NewUserID)

	var reloaded models.User
	s.Require().NoError(s.db.First(&reloaded, referrer.ID).Error)
	s.Equal(10, reloaded.Points)
}

func (s *AuthServiceTestSuite) TestQueryReferralCodeWinsOverPayload() {
	referrer := s.registerUser("0770000001", "bob")
	payload := "NOPE123"

	res, err := s.auth.Register(ctxBG, &RegisterRequest{
		MobileNo: "0770000002", Username: "carol", Password: "secret123", ReferralCodeUsed: &payload,
	}, referrer.ReferralCode)
	s.Require().NoError(err)
	s.True(res.ReferralApplied)
	s.Equal(referrer.ReferralCode, *res.User.ReferredBy)
}

func (s *AuthServiceTestSuite) TestRegisterWithUnknownReferralCode() {
	existing := s.registerUser("0770000001", "bob")
	unknown := "ZZZ9999"

	res, err := s.auth.Register(ctxBG, &RegisterRequest{
		MobileNo: "0770000002", Username: "carol", Password: "secret123", ReferralCodeUsed: &unknown,
	}, "")
	s.Require().NoError(err)
	s.False(res.ReferralApplied)
	s.Empty(res.ReferralError)
	s.Equal(unknown, *res.User.ReferredBy)
	s.Zero(s.count(&models.Referral{}))

	var reloaded models.User
	s.Require().NoError(s.db.First(&reloaded, existing.ID).Error)
	s.Zero(reloaded.Points)
}

func (s *AuthServiceTestSuite) TestReferralFailureKeepsUser() {
	referrer := s.registerUser("0770000001", "bob")
	s.failCreatesOn("referrals")

	res, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: "0770000002", Username: "carol", Password: "secret123"}, referrer.ReferralCode)
	s.Require().NoError(err)
	s.False(res.ReferralApplied)
	s.NotEmpty(res.ReferralError)
	s.Equal(int64(2), s.count(&models.User{}))
	s.Zero(s.count(&models.Referral{}))

	// the points increment rolled back with the failed insert
	var reloaded models.User
	s.Require().NoError(s.db.First(&reloaded, referrer.ID).Error)
	s.Zero(reloaded.Points)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateMobile() {
	s.registerUser("0771234567", "alice")

	_, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: "0771234567", Username: "alice2", Password: "secret123"}, "")
	s.requireCode(err, apperror.CodeDuplicateIdentity)
	s.Equal(int64(1), s.count(&models.User{}))
}

func (s *AuthServiceTestSuite) TestRegisterValidation() {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"short mobile", RegisterRequest{MobileNo: "07712", Username: "a", Password: "secret123"}},
		{"letters in mobile", RegisterRequest{MobileNo: "07712abcde", Username: "a", Password: "secret123"}},
		{"short password", RegisterRequest{MobileNo: "0771234567", Username: "a", Password: "12345"}},
		{"long password", RegisterRequest{MobileNo: "0771234567", Username: "a", Password: string(make([]byte, 73))}},
		{"missing username", RegisterRequest{MobileNo: "0771234567", Password: "secret123"}},
		{"bad email", RegisterRequest{MobileNo: "0771234567", Username: "a", Password: "secret123", Email: strPtr("nope")}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := tt.req
			_, err := s.auth.Register(ctxBG, &req, "")
			s.requireCode(err, apperror.CodeValidation)
		})
	}
	s.Zero(s.count(&models.User{}))
}

func (s *AuthServiceTestSuite) TestBlankEmailTreatedAsAbsent() {
	res, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: "0771234567", Username: "a", Password: "secret123", Email: strPtr("  ")}, "")
	s.Require().NoError(err)
	s.Nil(res.User.Email)
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.registerUser("0771234567", "alice")
	utils.SetJWTSecret(s.cfg.JWT.SecretKey)

	resp, err := s.auth.Login(ctxBG, &LoginRequest{MobileNo: "0771234567", Password: "secret123"})
	s.Require().NoError(err)
	s.Equal("Bearer", resp.TokenType)
	s.Equal(3600, resp.ExpiresIn)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, claims.UserID)
	s.False(claims.IsAdmin)

	_, err = s.auth.Login(ctxBG, &LoginRequest{MobileNo: "0771234567", Password: "wrong-pass"})
	s.requireCode(err, apperror.CodeInvalidCredentials)

	_, err = s.auth.Login(ctxBG, &LoginRequest{MobileNo: "0779999999", Password: "secret123"})
	s.requireCode(err, apperror.CodeInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestGetProfile() {
	user := s.registerUser("0771234567", "alice")

	profile, err := s.auth.GetProfile(ctxBG, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", profile.Username)

	_, err = s.auth.GetProfile(ctxBG, user.ID+100)
	s.requireCode(err, apperror.CodeNotFound)
}

func strPtr(s string) *string { return &s }
