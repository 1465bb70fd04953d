package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/config"
	"github.com/javajoker/store-platform/internal/database"
	"github.com/javajoker/store-platform/internal/metrics"
	"github.com/javajoker/store-platform/internal/models"
)

// serviceSuite gives every test a fresh in-memory database and the full set
// of services wired against it.
type serviceSuite struct {
	suite.Suite

	db      *gorm.DB
	cfg     *config.Config
	log     *logrus.Logger
	hook    *test.Hook
	metrics *metrics.Metrics

	referrals *ReferralService
	auth      *AuthService
	catalog   *CatalogService
	stores    *StoreService
	orders    *OrderService
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Database:    config.DatabaseConfig{Driver: "sqlite", SQLitePath: "file::memory:", LogLevel: "silent"},
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Referral:    config.ReferralConfig{RewardPoints: 10, LeaderboardLimit: 10},
	}
}

func (s *serviceSuite) SetupTest() {
	s.cfg = testConfig()
	s.log, s.hook = test.NewNullLogger()
	s.log.SetLevel(logrus.DebugLevel)

	db, err := database.Initialize(s.cfg.Database, s.log)
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db, s.log))
	s.db = db

	s.metrics = metrics.New(prometheus.NewRegistry())
	s.referrals = NewReferralService(db, s.cfg, s.log)
	s.auth = NewAuthService(db, s.cfg, s.log, s.referrals, s.metrics)
	s.catalog = NewCatalogService(db, s.cfg, s.log, s.metrics)
	s.stores = NewStoreService(db, s.log, s.catalog)
	s.orders = NewOrderService(db, s.log, s.metrics)
}

func (s *serviceSuite) TearDownTest() {
	database.Close(s.db, s.log)
}

// failCreatesOn makes every INSERT into table fail.
func (s *serviceSuite) failCreatesOn(table string) {
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("simulated write failure"))
		}
	})
	s.Require().NoError(err)
}

func (s *serviceSuite) count(model interface{}) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

func (s *serviceSuite) requireCode(err error, code apperror.Code) {
	s.Require().Error(err)
	s.Require().True(apperror.IsCode(err, code), "expected %s, got %v", code, err)
}

func (s *serviceSuite) registerUser(mobile, username string) *models.User {
	res, err := s.auth.Register(ctxBG, &RegisterRequest{MobileNo: mobile, Username: username, Password: "secret123"}, "")
	s.Require().NoError(err)
	return res.User
}

func (s *serviceSuite) createProduct(name string) *ProductView {
	view, err := s.catalog.CreateProduct(ctxBG, &CreateProductRequest{
		Name: name, Category: "Electronics", Type: "Gadget",
		Price: 150, ActualPrice: 100, Images: []string{"https://img.example/" + name + ".png"},
	})
	s.Require().NoError(err)
	return view
}
