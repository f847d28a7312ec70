package candidate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/tool"
)

var ErrNotFound = errors.New("candidate profile not found")

type UpsertRequest struct {
	Headline        string   `json:"headline" binding:"required"`
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years" binding:"min=0"`
	City            string   `json:"city"`
	Visible         *bool    `json:"visible"`
}

type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func New(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Upsert creates or replaces the caller's profile. One profile per customer,
// enforced by the unique customer_id index.
func (s *Service) Upsert(ctx context.Context, customerID string, req *UpsertRequest) (*models.CandidateProfile, error) {
	skills, err := skillsJSON(req.Skills)
	if err != nil {
		return nil, err
	}
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	row := &models.CandidateProfile{
		ID:              tool.GenerateUUIDV7(),
		CustomerID:      customerID,
		Headline:        req.Headline,
		Summary:         req.Summary,
		Skills:          skills,
		ExperienceYears: req.ExperienceYears,
		City:            req.City,
		Visible:         visible,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"headline", "summary", "skills", "experience_years", "city", "visible", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate profile: %w", err)
	}
	return s.GetOwn(ctx, customerID)
}

func (s *Service) GetOwn(ctx context.Context, customerID string) (*models.CandidateProfile, error) {
	var row models.CandidateProfile
	if err := s.db.WithContext(ctx).First(&row, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load candidate profile: %w", err)
	}
	return &row, nil
}

// GetPublic serves the public read path; hidden profiles are not found.
func (s *Service) GetPublic(ctx context.Context, id string) (*models.CandidateProfile, error) {
	var row models.CandidateProfile
	if err := s.db.WithContext(ctx).First(&row, "id = ? AND visible", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load candidate profile: %w", err)
	}
	return &row, nil
}

func (s *Service) Delete(ctx context.Context, customerID string) error {
	res := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CandidateProfile{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete candidate profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func skillsJSON(skills []string) (datatypes.JSON, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	return datatypes.JSON(b), nil
}
