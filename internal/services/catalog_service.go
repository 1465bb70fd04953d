// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/config"
	"github.com/javajoker/store-platform/internal/database"
	"github.com/javajoker/store-platform/internal/metrics"
	"github.com/javajoker/store-platform/internal/models"
	"github.com/javajoker/store-platform/internal/utils"
)

type CatalogService struct {
	db      *gorm.DB
	cfg     *config.Config
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

type CreateProductRequest struct {
	Name           string                 `json:"name" validate:"required,notblank,max=255"`
	Category       string                 `json:"category" validate:"required,notblank,max=100"`
	Type           string                 `json:"type" validate:"required,notblank,max=100"`
	Description    *string                `json:"description,omitempty"`
	Features       []string               `json:"features,omitempty"`
	Specifications []models.Specification `json:"specifications,omitempty"`
	Images         []string               `json:"images,omitempty"`
	Price          float64                `json:"price" validate:"gte=0"`
	ActualPrice    float64                `json:"actual_price" validate:"gte=0"`
	Points         int                    `json:"points" validate:"gte=0"`
}

type ProductView struct {
	Basic   models.ProductBasic   `json:"basic"`
	Details models.ProductDetails `json:"details"`
}

func NewCatalogService(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger, m *metrics.Metrics) *CatalogService {
	return &CatalogService{
		db:      db,
		cfg:     cfg,
		log:     log.WithField("service", "catalog"),
		metrics: m,
	}
}

// ComputePricing returns price-actualPrice and that profit as a percentage of
// actualPrice. The margin is 0 when actualPrice is not positive.
func ComputePricing(price, actualPrice float64) (profit, margin float64) {
	p := decimal.NewFromFloat(price)
	a := decimal.NewFromFloat(actualPrice)

	diff := p.Sub(a)
	profit = diff.InexactFloat64()
	if a.GreaterThan(decimal.Zero) {
		margin = diff.Mul(decimal.NewFromInt(100)).Div(a).InexactFloat64()
	}
	return profit, margin
}

func normalizeFeatures(features []string) models.StringList {
	var out models.StringList
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Entries keep their original text; only the blank check trims.
func normalizeSpecifications(specs []models.Specification) models.SpecificationList {
	var out models.SpecificationList
	for _, spec := range specs {
		if strings.TrimSpace(spec.Label) != "" && strings.TrimSpace(spec.Value) != "" {
			out = append(out, spec)
		}
	}
	return out
}

func normalizeImages(images []string) models.StringList {
	if len(images) == 0 {
		return nil
	}
	return models.StringList(images)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductView, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	profit, margin := ComputePricing(req.Price, req.ActualPrice)

	basic := models.ProductBasic{
		ProductID: utils.GenerateProductID(),
		Category:  req.Category,
		Name:      req.Name,
		Type:      req.Type,
	}
	details := models.ProductDetails{
		Description:    req.Description,
		Features:       normalizeFeatures(req.Features),
		Specifications: normalizeSpecifications(req.Specifications),
		Images:         normalizeImages(req.Images),
		Price:          req.Price,
		ActualPrice:    req.ActualPrice,
		Profit:         profit,
		Margin:         margin,
		Points:         req.Points,
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(&basic).Error; err != nil {
			return err
		}
		details.ProductsID = basic.ID
		return tx.Create(&details).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.CodeDuplicateIdentity, err, "product id already exists")
		}
		return nil, persistenceError(err, "failed to create product")
	}

	s.log.WithFields(logrus.Fields{
		"product_id": basic.ProductID,
		"profit":     profit,
		"margin":     margin,
	}).Info("Product created")

	return &ProductView{Basic: basic, Details: details}, nil
}

// ListProducts returns every product that has readable details. Products
// whose details are missing or cannot be decoded are logged and left out.
func (s *CatalogService) ListProducts(ctx context.Context) ([]ProductView, error) {
	var basics []models.ProductBasic
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&basics).Error; err != nil {
		return nil, persistenceError(err, "failed to list products")
	}
	return s.attachDetails(ctx, basics)
}

// ListByProductIDs applies the ListProducts rules to the given product ids.
func (s *CatalogService) ListByProductIDs(ctx context.Context, productIDs []string) ([]ProductView, error) {
	if len(productIDs) == 0 {
		return []ProductView{}, nil
	}

	var basics []models.ProductBasic
	if err := s.db.WithContext(ctx).Where("product_id IN ?", productIDs).Order("id ASC").Find(&basics).Error; err != nil {
		return nil, persistenceError(err, "failed to list products")
	}
	return s.attachDetails(ctx, basics)
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*ProductView, error) {
	db := s.db.WithContext(ctx)

	var basic models.ProductBasic
	if err := db.Where("product_id = ?", productID).First(&basic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "product not found")
		}
		return nil, persistenceError(err, "failed to load product")
	}

	var details models.ProductDetails
	if err := db.Where("products_id = ?", basic.ID).Order("id ASC").First(&details).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodePersistenceFailure, "product details missing")
		}
		return nil, persistenceError(err, "failed to load product details")
	}

	return &ProductView{Basic: basic, Details: details}, nil
}

// attachDetails pairs each basic with its first readable details row, in the
// order of basics.
func (s *CatalogService) attachDetails(ctx context.Context, basics []models.ProductBasic) ([]ProductView, error) {
	views := make([]ProductView, 0, len(basics))
	if len(basics) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(basics))
	for _, b := range basics {
		ids = append(ids, b.ID)
	}

	rows, err := s.db.WithContext(ctx).Model(&models.ProductDetails{}).
		Where("products_id IN ?", ids).
		Order("id ASC").
		Rows()
	if err != nil {
		return nil, persistenceError(err, "failed to load product details")
	}
	defer rows.Close()

	byProduct := make(map[uint]models.ProductDetails, len(basics))
	for rows.Next() {
		var d models.ProductDetails
		if err := s.db.WithContext(ctx).ScanRows(rows, &d); err != nil {
			s.log.WithError(err).Warn("Skipping unreadable product details row")
			continue
		}
		if _, seen := byProduct[d.ProductsID]; !seen {
			byProduct[d.ProductsID] = d
		}
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError(err, "failed to read product details")
	}

	for _, b := range basics {
		d, ok := byProduct[b.ID]
		if !ok {
			s.log.WithField("product_id", b.ProductID).Warn("Product has no readable details, leaving it out")
			s.metrics.IncCatalogSkipped()
			continue
		}
		views = append(views, ProductView{Basic: b, Details: d})
	}
	return views, nil
}
