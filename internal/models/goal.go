package models

import (
	"time"

	"gorm.io/gorm"
)

type Goal struct {
	gorm.Model

	Description   string    `gorm:"not null"`
	TargetScore   float64   `gorm:"not null"`
	Deadline      time.Time `gorm:"not null;index"`
	UserID        uint      `gorm:"not null;index"`
	Status        string    `gorm:"not null;default:active;index"` // "active", "achieved", "missed"
	AchievedScore *float64
	EvaluatedAt   *time.Time
}
