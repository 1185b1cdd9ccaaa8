package contract

import (
	"context"

	"whatsapp-storefront-be/internal/entity"
	"whatsapp-storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DistinctCategories and DistinctSubcategories return the non-empty
	// values for available products, in catalog insertion order.
	DistinctCategories(ctx context.Context, companyId uuid.UUID) ([]string, error)
	DistinctSubcategories(ctx context.Context, companyId uuid.UUID, category string) ([]string, error)

	// FindByNameILike does a case-insensitive substring lookup on the
	// product name, scoped to available products of one company.
	FindByNameILike(ctx context.Context, companyId uuid.UUID, name string) (*entity.Product, error)
}
