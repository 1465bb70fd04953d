// internal/models/product.go
package models

// ProductBasic is the identity half of a catalog product.
type ProductBasic struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID string `json:"product_id" gorm:"uniqueIndex:idx_product_basic_product_id;size:50;not null"`
	Category  string `json:"category" gorm:"size:100;not null"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Type      string `json:"type" gorm:"size:100;not null"`
}

func (ProductBasic) TableName() string { return "product_basic" }

// ProductDetails carries the commercial half of a product. Exactly one row
// exists per ProductBasic; both are always written in the same transaction.
type ProductDetails struct {
	ID             uint              `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductsID     uint              `json:"products_id" gorm:"not null;index"`
	Description    *string           `json:"description" gorm:"type:text"`
	Features       StringList        `json:"features" gorm:"type:json"`
	Specifications SpecificationList `json:"specifications" gorm:"type:json"`
	Images         StringList        `json:"images" gorm:"type:json"`
	Price          float64           `json:"price" gorm:"not null"`
	ActualPrice    float64           `json:"actual_price" gorm:"not null"`
	Profit         float64           `json:"profit" gorm:"not null"`
	Margin         float64           `json:"margin" gorm:"not null"`
	Points         int               `json:"points" gorm:"not null;default:0"`
}

func (ProductDetails) TableName() string { return "product_details" }
