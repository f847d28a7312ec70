package models

import (
	"time"

	"gorm.io/datatypes"
)

// CandidateProfile is a job seeker's public profile. One per customer.
type CandidateProfile struct {
	ID              string         `gorm:"column:id;primary_key;type:uuid" json:"id"`
	CustomerID      string         `gorm:"column:customer_id;type:varchar(64);not null;uniqueIndex" json:"customer_id"`
	Headline        string         `gorm:"column:headline;type:varchar(255);not null" json:"headline"`
	Summary         string         `gorm:"column:summary;type:text" json:"summary"`
	Skills          datatypes.JSON `gorm:"column:skills;type:jsonb;default:'[]'" json:"skills"`
	ExperienceYears int            `gorm:"column:experience_years;not null;default:0" json:"experience_years"`
	City            string         `gorm:"column:city;type:varchar(128)" json:"city"`
	// Visible gates the public read path; the owner always sees their own profile.
	Visible   bool      `gorm:"column:visible;not null;default:true" json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CandidateProfile) TableName() string {
	return "candidate_profile"
}
