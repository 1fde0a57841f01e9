// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// UsageLogModel represents the usage_logs table in the database.
type UsageLogModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_usage_customer_period,priority:1"`
	ServiceType string    `gorm:"type:varchar(50);not null"`
	Count       int64     `gorm:"not null"`
	Year        int       `gorm:"not null;index:idx_usage_customer_period,priority:2"`
	Month       int       `gorm:"not null;index:idx_usage_customer_period,priority:3"`
	LoggedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the UsageLogModel.
func (UsageLogModel) TableName() string {
	return "usage_logs"
}

// ToEntity converts a UsageLogModel to a domain UsageLog entity.
func (m *UsageLogModel) ToEntity() *entity.UsageLog {
	return &entity.UsageLog{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Service:    entity.ServiceKey(m.ServiceType),
		Count:      m.Count,
		Year:       m.Year,
		Month:      m.Month,
		LoggedAt:   m.LoggedAt,
	}
}

// UsageLogModelFromEntity creates a UsageLogModel from a domain UsageLog entity.
func UsageLogModelFromEntity(l *entity.UsageLog) *UsageLogModel {
	return &UsageLogModel{
		ID:          l.ID,
		CustomerID:  l.CustomerID,
		ServiceType: string(l.Service),
		Count:       l.Count,
		Year:        l.Year,
		Month:       l.Month,
		LoggedAt:    l.LoggedAt,
	}
}
