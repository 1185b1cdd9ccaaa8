package contract

import (
	"context"

	"whatsapp-storefront-be/internal/entity"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindByPhoneNumberId(ctx context.Context, phoneNumberId string) (*entity.Company, error)
}
