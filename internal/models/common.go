// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB holds free-form request/response data.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	*j = nil
	return scanJSON(value, j)
}

// StringList is a nullable JSON array of strings. A nil list is stored as NULL.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	*l = nil
	return scanJSON(value, l)
}

// Specification is one label/value row of a product's spec sheet.
type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SpecificationList is a nullable JSON array of specifications.
type SpecificationList []Specification

func (l SpecificationList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]Specification(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *SpecificationList) Scan(value interface{}) error {
	*l = nil
	return scanJSON(value, l)
}

// scanJSON decodes a JSON column into dest. NULL is a no-op.
func scanJSON(value interface{}, dest interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// Enums
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)
