package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Company struct {
	Id                    uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                  string                      `gorm:"type:varchar(255);not null"`
	WhatsappPhoneNumberId string                      `gorm:"type:varchar(64);not null;uniqueIndex"`
	Address               string                      `gorm:"type:text"`
	BusinessHours         string                      `gorm:"type:varchar(255)"`
	PaymentMethods        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt             time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt             time.Time                   `gorm:"autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}
