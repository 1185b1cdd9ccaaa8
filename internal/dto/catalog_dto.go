package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name                  string   `json:"name" validate:"required"`
	WhatsappPhoneNumberId string   `json:"whatsapp_phone_number_id" validate:"required"`
	Address               string   `json:"address"`
	BusinessHours         string   `json:"business_hours"`
	PaymentMethods        []string `json:"payment_methods"`
}

type CreateCompanyResponse struct {
	Id uuid.UUID `json:"id"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory"`
	Available   *bool   `json:"available"`
}

type UpdateProductRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Category    string    `json:"category" validate:"required"`
	Subcategory string    `json:"subcategory"`
	Available   *bool     `json:"available"`
}

type ProductResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory,omitempty"`
	Available   bool       `json:"available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ListProductsResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}
