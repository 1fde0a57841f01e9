// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// CustomerModel represents the customers table in the database.
type CustomerModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null;index"`
	Email           string          `gorm:"type:varchar(255);not null;index"`
	Phone           string          `gorm:"type:varchar(50)"`
	Company         string          `gorm:"type:varchar(255)"`
	RateCard        string          `gorm:"type:jsonb;not null;default:'{}'"`
	Bundles         pq.StringArray  `gorm:"type:text[]"`
	UsageLimits     string          `gorm:"type:jsonb;not null;default:'{}'"`
	MinimumBalance  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AccountStatus   string          `gorm:"type:varchar(20);not null;default:'active';index"`
	StatusReason    string          `gorm:"type:text"`
	StatusChangedAt *time.Time
	Permissions     string          `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CustomerModel.
func (CustomerModel) TableName() string {
	return "customers"
}

// ToEntity converts a CustomerModel to a domain Customer entity.
func (m *CustomerModel) ToEntity() *entity.Customer {
	rateCard := make(map[entity.ServiceKey]decimal.Decimal)
	decodeJSON(m.RateCard, &rateCard)

	usageLimits := make(map[entity.ServiceKey]int64)
	decodeJSON(m.UsageLimits, &usageLimits)

	permissions := make(map[string]bool)
	decodeJSON(m.Permissions, &permissions)

	bundles := make([]entity.BundleKey, 0, len(m.Bundles))
	for _, b := range m.Bundles {
		bundles = append(bundles, entity.BundleKey(b))
	}

	return &entity.Customer{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		Company:         m.Company,
		RateCard:        rateCard,
		Bundles:         bundles,
		UsageLimits:     usageLimits,
		MinimumBalance:  m.MinimumBalance,
		Balance:         m.Balance,
		AccountStatus:   entity.AccountStatus(m.AccountStatus),
		StatusReason:    m.StatusReason,
		StatusChangedAt: m.StatusChangedAt,
		Permissions:     permissions,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// CustomerModelFromEntity creates a CustomerModel from a domain Customer entity.
func CustomerModelFromEntity(c *entity.Customer) *CustomerModel {
	bundles := make(pq.StringArray, 0, len(c.Bundles))
	for _, b := range c.Bundles {
		bundles = append(bundles, string(b))
	}

	return &CustomerModel{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Company:         c.Company,
		RateCard:        encodeJSON(c.RateCard, "{}"),
		Bundles:         bundles,
		UsageLimits:     encodeJSON(c.UsageLimits, "{}"),
		MinimumBalance:  c.MinimumBalance,
		Balance:         c.Balance,
		AccountStatus:   string(c.AccountStatus),
		StatusReason:    c.StatusReason,
		StatusChangedAt: c.StatusChangedAt,
		Permissions:     encodeJSON(c.Permissions, "{}"),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
