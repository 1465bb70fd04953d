// internal/services/store_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/database"
	"github.com/javajoker/store-platform/internal/models"
	"github.com/javajoker/store-platform/internal/utils"
)

type StoreService struct {
	db      *gorm.DB
	log     logrus.FieldLogger
	catalog *CatalogService
}

type AddStoreProductRequest struct {
	ProductID string `json:"product_id" validate:"required,notblank"`
}

type CreateStoreRequest struct {
	StoreName string `json:"store_name" validate:"required,notblank,max=100"`
	StoreCode string `json:"store_code" validate:"required,notblank,max=50"`
}

func NewStoreService(db *gorm.DB, log logrus.FieldLogger, catalog *CatalogService) *StoreService {
	return &StoreService{
		db:      db,
		log:     log.WithField("service", "store"),
		catalog: catalog,
	}
}

// AddProduct copies name, category and type from the catalog into the
// user's storefront.
func (s *StoreService) AddProduct(ctx context.Context, userID, productID string) (*models.UserStore, error) {
	if err := utils.ValidateStruct(&AddStoreProductRequest{ProductID: productID}); err != nil {
		return nil, validationError(err)
	}
	db := s.db.WithContext(ctx)

	var basic models.ProductBasic
	if err := db.Where("product_id = ?", productID).First(&basic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "product not found")
		}
		return nil, persistenceError(err, "failed to load product")
	}

	var count int64
	if err := db.Model(&models.UserStore{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return nil, persistenceError(err, "failed to check store")
	}
	if count > 0 {
		return nil, apperror.New(apperror.CodeAlreadyExists, "product already in store")
	}

	entry := &models.UserStore{
		UserID:    userID,
		ProductID: productID,
		Name:      basic.Name,
		Category:  basic.Category,
		Type:      basic.Type,
	}
	if err := db.Create(entry).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.CodeAlreadyExists, err, "product already in store")
		}
		return nil, persistenceError(err, "failed to add product to store")
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "product_id": productID}).Info("Product added to store")
	return entry, nil
}

func (s *StoreService) RemoveProduct(ctx context.Context, userID, productID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.UserStore{})
	if result.Error != nil {
		return persistenceError(result.Error, "failed to remove product from store")
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, "product not found in store")
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "product_id": productID}).Info("Product removed from store")
	return nil
}

// ListProducts returns the live catalog view of every product in the user's
// storefront, in the order they were added. Products no longer in the
// catalog are dropped.
func (s *StoreService) ListProducts(ctx context.Context, userID string) ([]ProductView, error) {
	var productIDs []string
	if err := s.db.WithContext(ctx).Model(&models.UserStore{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("product_id", &productIDs).Error; err != nil {
		return nil, persistenceError(err, "failed to load store")
	}

	views, err := s.catalog.ListByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]ProductView, len(views))
	for _, v := range views {
		byID[v.Basic.ProductID] = v
	}
	ordered := make([]ProductView, 0, len(views))
	for _, id := range productIDs {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (s *StoreService) CreateStore(ctx context.Context, userID, username string, req *CreateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Store{}).Where("store_code = ?", req.StoreCode).Count(&count).Error; err != nil {
		return nil, persistenceError(err, "failed to check store code")
	}
	if count > 0 {
		return nil, apperror.New(apperror.CodeAlreadyExists, "store code already exists")
	}

	store := &models.Store{
		StoreID:   uuid.NewString(),
		StoreName: req.StoreName,
		UserID:    userID,
		Username:  username,
		StoreCode: req.StoreCode,
	}
	if err := db.Create(store).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.CodeAlreadyExists, err, "store code already exists")
		}
		return nil, persistenceError(err, "failed to create store")
	}

	s.log.WithFields(logrus.Fields{"store_id": store.StoreID, "store_code": store.StoreCode}).Info("Store created")
	return store, nil
}
