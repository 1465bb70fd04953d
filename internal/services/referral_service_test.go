package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/models"
)

type ReferralServiceTestSuite struct {
	serviceSuite
}

func TestReferralServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReferralServiceTestSuite))
}

func (s *ReferralServiceTestSuite) TestApplyReferralUnknownCodeIsNoop() {
	user := s.registerUser("0771234567", "alice")

	res, err := s.referrals.ApplyReferral(ctxBG, "MISSING", user.ID)
	s.Require().NoError(err)
	s.False(res.Applied)
	s.Zero(s.count(&models.Referral{}))
}

func (s *ReferralServiceTestSuite) TestApplyReferralUsesConfiguredReward() {
	s.cfg.Referral.RewardPoints = 25
	referrer := s.registerUser("0770000001", "bob")
	newUser := s.registerUser("0770000002", "carol")

	res, err := s.referrals.ApplyReferral(ctxBG, referrer.ReferralCode, newUser.ID)
	s.Require().NoError(err)
	s.True(res.Applied)
	s.Equal(referrer.ID, res.ReferrerID)
	s.Equal(25, res.PointsAwarded)

	var reloaded models.User
	s.Require().NoError(s.db.First(&reloaded, referrer.ID).Error)
	s.Equal(25, reloaded.Points)
}

func (s *ReferralServiceTestSuite) TestSummary() {
	referrer := s.registerUser("0770000001", "bob")
	for _, u := range []struct{ mobile, name string }{{"0770000002", "carol"}, {"0770000003", "dave"}} {
		_, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: u.mobile, Username: u.name, Password: "secret123"}, referrer.ReferralCode)
		s.Require().NoError(err)
	}

	summary, err := s.referrals.Summary(ctxBG, referrer.ID)
	s.Require().NoError(err)
	s.Equal(referrer.ReferralCode, summary.ReferralCode)
	s.Equal(20, summary.Points)
	s.Equal(2, summary.TotalReferrals)
	s.ElementsMatch([]string{"carol", "dave"}, []string{summary.Referrals[0].Username, summary.Referrals[1].Username})

	_, err = s.referrals.Summary(ctxBG, 999)
	s.requireCode(err, apperror.CodeNotFound)
}

func (s *ReferralServiceTestSuite) TestLeaderboard() {
	top := s.registerUser("0770000001", "bob")
	other := s.registerUser("0770000002", "carol")
	_, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: "0770000003", Username: "dave", Password: "secret123"}, top.ReferralCode)
	s.Require().NoError(err)

	entries, err := s.referrals.Leaderboard(ctxBG, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(top.ID, entries[0].UserID)
	s.Equal(10, entries[0].Points)
	s.Equal(int64(1), entries[0].Referrals)
	s.Equal(other.ID, entries[1].UserID)
	s.Zero(entries[1].Referrals)

	// out of range limits fall back to the configured default
	entries, err = s.referrals.Leaderboard(ctxBG, 0)
	s.Require().NoError(err)
	s.Len(entries, 3)
}
