// internal/services/order_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/database"
	"github.com/javajoker/store-platform/internal/metrics"
	"github.com/javajoker/store-platform/internal/models"
	"github.com/javajoker/store-platform/internal/utils"
)

type OrderService struct {
	db      *gorm.DB
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

type OrderRequest struct {
	ProductID  string  `json:"product_id" validate:"required,notblank"`
	Quantity   int     `json:"quantity" validate:"gte=1"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}

type BillingRequest struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,notblank"`
	Phone   string `json:"phone" validate:"required,notblank"`
	Address string `json:"address" validate:"required,notblank"`
	City    string `json:"city" validate:"required,notblank"`
	ZipCode string `json:"zip_code" validate:"required,notblank"`
	Country string `json:"country" validate:"required,notblank"`
}

// UnmarshalJSON also accepts the zip code as "zipCode".
func (b *BillingRequest) UnmarshalJSON(data []byte) error {
	type plain BillingRequest
	aux := struct {
		*plain
		ZipCodeAlias string `json:"zipCode"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.ZipCode == "" {
		b.ZipCode = aux.ZipCodeAlias
	}
	return nil
}

type CreateOrderRequest struct {
	OrderData   OrderRequest   `json:"order_data"`
	BillingData BillingRequest `json:"billing_data"`
}

type OrderResult struct {
	OrderID   uint `json:"order_id"`
	BillingID uint `json:"billing_id"`
}

type OrderProduct struct {
	ID     *uint             `json:"id"`
	Images models.StringList `json:"images"`
}

type OrderView struct {
	ID             uint                   `json:"id"`
	ProductID      string                 `json:"product_id"`
	Quantity       int                    `json:"quantity"`
	TotalPrice     float64                `json:"total_price"`
	Status         models.OrderStatus     `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
	BillingDetails *models.BillingDetails `json:"billing_details"`
	ProductDetails OrderProduct           `json:"product_details"`
}

func NewOrderService(db *gorm.DB, log logrus.FieldLogger, m *metrics.Metrics) *OrderService {
	return &OrderService{
		db:      db,
		log:     log.WithField("service", "order"),
		metrics: m,
	}
}

// CreateOrder commits the order and then, in a second transaction, its
// billing record. If the billing step fails the order is kept: the result
// carries the order id with a zero billing id, alongside an error whose
// details name the order.
func (s *OrderService) CreateOrder(ctx context.Context, orderReq *OrderRequest, billingReq *BillingRequest) (*OrderResult, error) {
	if err := utils.ValidateStruct(orderReq); err != nil {
		return nil, validationError(err)
	}
	if err := utils.ValidateStruct(billingReq); err != nil {
		return nil, validationError(err)
	}

	db := s.db.WithContext(ctx)

	order := models.Order{
		ProductID:  orderReq.ProductID,
		Quantity:   orderReq.Quantity,
		TotalPrice: orderReq.TotalPrice,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := database.WithTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, persistenceError(err, "failed to create order")
	}

	logger := s.log.WithFields(logrus.Fields{"order_id": order.ID, "product_id": order.ProductID})
	result := &OrderResult{OrderID: order.ID}

	billing := models.BillingDetails{
		OrderID:   order.ID,
		Name:      billingReq.Name,
		Email:     billingReq.Email,
		Phone:     billingReq.Phone,
		Address:   billingReq.Address,
		City:      billingReq.City,
		ZipCode:   billingReq.ZipCode,
		Country:   billingReq.Country,
		CreatedAt: time.Now(),
	}
	if err := database.WithTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&billing).Error
	}); err != nil {
		logger.WithError(err).Error("Order saved without billing details")
		s.metrics.IncOrder(false)
		return result, persistenceError(err, "order saved but billing details were not").
			WithDetails(map[string]interface{}{"order_id": order.ID})
	}

	result.BillingID = billing.ID
	s.metrics.IncOrder(true)
	logger.WithField("billing_id", billing.ID).Info("Order created")
	return result, nil
}

// ListOrders returns every order with its billing record and the catalog id
// and images of its product. Lookups that miss or fail leave those fields
// null.
func (s *OrderService) ListOrders(ctx context.Context) ([]OrderView, error) {
	db := s.db.WithContext(ctx)

	var orders []models.Order
	if err := db.Order("id ASC").Find(&orders).Error; err != nil {
		return nil, persistenceError(err, "failed to list orders")
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		logger := s.log.WithField("order_id", o.ID)
		view := OrderView{
			ID:         o.ID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		}

		var billing models.BillingDetails
		if err := db.Where("order_id = ?", o.ID).Order("id ASC").First(&billing).Error; err == nil {
			view.BillingDetails = &billing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithError(err).Warn("Failed to load billing details")
		}

		var basic models.ProductBasic
		if err := db.Where("product_id = ?", o.ProductID).First(&basic).Error; err == nil {
			id := basic.ID
			view.ProductDetails.ID = &id

			var details models.ProductDetails
			if err := db.Where("products_id = ?", basic.ID).Order("id ASC").First(&details).Error; err == nil {
				view.ProductDetails.Images = details.Images
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.WithError(err).Warn("Failed to load product details")
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithError(err).Warn("Failed to load product")
		}

		views = append(views, view)
	}
	return views, nil
}
