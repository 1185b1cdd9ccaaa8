package entity

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string
	WhatsappPhoneNumberId string `gorm:"uniqueIndex"`
	Address               string
	BusinessHours         string
	PaymentMethods        []string
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
