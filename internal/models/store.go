// internal/models/store.go
package models

import "time"

// UserStore is one product curated into a user's storefront. Name, Category
// and Type are copied from the catalog when the row is created.
type UserStore struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string `json:"user_id" gorm:"size:50;not null;uniqueIndex:idx_user_store_user_product,priority:1"`
	ProductID string `json:"product_id" gorm:"size:50;not null;uniqueIndex:idx_user_store_user_product,priority:2"`
	Name      string `json:"name" gorm:"size:100;not null"`
	Category  string `json:"category" gorm:"size:100;not null"`
	Type      string `json:"type" gorm:"size:50;not null"`
}

func (UserStore) TableName() string { return "user_store" }

type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string    `json:"store_id" gorm:"uniqueIndex;size:36;not null"`
	StoreName string    `json:"store_name" gorm:"size:100;not null"`
	UserID    string    `json:"user_id" gorm:"size:50;not null;index"`
	Username  string    `json:"username" gorm:"size:50"`
	StoreCode string    `json:"store_code" gorm:"uniqueIndex:idx_stores_store_code;size:50;not null"`
	CreatedAt time.Time `json:"created_at"`
}
