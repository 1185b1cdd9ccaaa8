package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyId   uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Subcategory string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
