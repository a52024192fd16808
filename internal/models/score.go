package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Score struct {
	gorm.Model

	Value          float64        `gorm:"not null"`
	AssignmentName string         `gorm:"not null"`
	Date           datatypes.Date `gorm:"not null"`
	SubjectID      uint           `gorm:"not null;index"`
	UserID         uint           `gorm:"not null;index"`

	// Relationships
	Subject Subject `gorm:"foreignKey:SubjectID"`
}
