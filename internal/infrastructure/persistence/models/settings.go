package models

import "time"

// ServerSettingModel is the persistence model for operator settings
type ServerSettingModel struct {
	Key       string    `gorm:"type:varchar(100);primary_key"`
	Value     string    `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ServerSettingModel) TableName() string {
	return "server_settings"
}
