package models

import "gorm.io/gorm"

type Subject struct {
	gorm.Model

	Name   string `gorm:"not null"`
	UserID uint   `gorm:"not null;index"`

	// Relationships
	Scores []Score `gorm:"foreignKey:SubjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
