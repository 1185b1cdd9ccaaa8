package implementation

import (
	"context"
	"errors"

	"whatsapp-storefront-be/internal/entity"
	"whatsapp-storefront-be/internal/mapper"
	"whatsapp-storefront-be/internal/model"
	"whatsapp-storefront-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompanyMapper
}

func NewCompanyRepository(db *gorm.DB) contract.CompanyRepository {
	return &CompanyRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompanyMapper(),
	}
}

func (r *CompanyRepositoryImpl) Create(ctx context.Context, company *entity.Company) error {
	m := r.mapper.ToModel(company)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*company = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var m model.Company
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CompanyRepositoryImpl) FindByPhoneNumberId(ctx context.Context, phoneNumberId string) (*entity.Company, error) {
	var m model.Company
	if err := r.db.WithContext(ctx).First(&m, "whatsapp_phone_number_id = ?", phoneNumberId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
