package mapper

import (
	"time"

	"whatsapp-storefront-be/internal/entity"
	"whatsapp-storefront-be/internal/model"

	"gorm.io/datatypes"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Company{
		Id:                    c.Id,
		Name:                  c.Name,
		WhatsappPhoneNumberId: c.WhatsappPhoneNumberId,
		Address:               c.Address,
		BusinessHours:         c.BusinessHours,
		PaymentMethods:        []string(c.PaymentMethods),
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *CompanyMapper) ToModel(c *entity.Company) *model.Company {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Company{
		Id:                    c.Id,
		Name:                  c.Name,
		WhatsappPhoneNumberId: c.WhatsappPhoneNumberId,
		Address:               c.Address,
		BusinessHours:         c.BusinessHours,
		PaymentMethods:        datatypes.NewJSONSlice(c.PaymentMethods),
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}
