package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCompanyID scopes a catalog query to one tenant.
type ByCompanyID struct {
	CompanyID uuid.UUID
}

func (s ByCompanyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyID)
}

// AvailableOnly hides products taken off the storefront.
type AvailableOnly struct{}

func (s AvailableOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("available = ?", true)
}

// ByCategory filters on the exact stored category value.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// BySubcategory filters on the exact stored subcategory value.
type BySubcategory struct {
	Subcategory string
}

func (s BySubcategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subcategory = ?", s.Subcategory)
}

// Limit caps the result set without paging.
type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}
