// internal/models/order.go
package models

import "time"

// Order.ProductID is a plain catalog product_id string. It is not checked
// against the catalog.
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID  string      `json:"product_id" gorm:"size:50;not null;index"`
	Quantity   int         `json:"quantity" gorm:"not null"`
	TotalPrice float64     `json:"total_price" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"size:50;default:'pending'"`
	CreatedAt  time.Time   `json:"created_at"`

	// Relationships
	BillingDetails *BillingDetails `json:"billing_details,omitempty" gorm:"foreignKey:OrderID"`
}

type BillingDetails struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:255"`
	City      string    `json:"city" gorm:"size:100"`
	ZipCode   string    `json:"zip_code" gorm:"size:20"`
	Country   string    `json:"country" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
}
