package listing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quicklist/marketplace/internal/app/service/upsell"
	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/types"
)

var ErrNotFound = errors.New("listing not found")

type SearchRequest struct {
	CategoryID string            `form:"category_id" json:"category_id"`
	City       string            `form:"city" json:"city"`
	Region     string            `form:"region" json:"region"`
	PriceMin   *float64          `form:"price_min" json:"price_min"`
	PriceMax   *float64          `form:"price_max" json:"price_max"`
	Query      string            `form:"q" json:"q"`
	UpsellType types.UpsellType  `form:"upsell_type" json:"upsell_type"`
	Sort       types.ListingSort `form:"sort" json:"sort"`
	From       int               `form:"from" json:"from"`
	Size       int               `form:"size" json:"size"`
}

type SearchResponse struct {
	Items []*models.Listing `json:"items"`
	Total int64             `json:"total"`
}

type Service struct {
	cfg *config.Config
	log *zap.SugaredLogger
	db  *gorm.DB
}

func New(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{cfg: cfg, log: log, db: db}
}

// filtersAnd combines CommonFilters into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Search runs the filtered, paginated listing query. Default ordering is
// priority: highest active boost weight first, then newest.
func (s *Service) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	if req.Size <= 0 {
		req.Size = 20
	}
	if req.From < 0 {
		req.From = 0
	}

	filters := []*types.CommonFilter{
		{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{string(types.ListingStatusActive)}},
	}
	if req.CategoryID != "" {
		filters = append(filters, &types.CommonFilter{Field: "category_id", Operator: types.CommonFilterOperatorEq, Values: []any{req.CategoryID}})
	}
	if req.City != "" {
		filters = append(filters, &types.CommonFilter{Field: "city", Operator: types.CommonFilterOperatorEq, Values: []any{req.City}})
	}
	if req.Region != "" {
		filters = append(filters, &types.CommonFilter{Field: "region", Operator: types.CommonFilterOperatorEq, Values: []any{req.Region}})
	}
	switch {
	case req.PriceMin != nil && req.PriceMax != nil:
		filters = append(filters, &types.CommonFilter{Field: "price", Operator: types.CommonFilterOperatorRange, Values: []any{*req.PriceMin, *req.PriceMax}})
	case req.PriceMin != nil:
		filters = append(filters, &types.CommonFilter{Field: "price", Operator: types.CommonFilterOperatorGte, Values: []any{*req.PriceMin}})
	case req.PriceMax != nil:
		filters = append(filters, &types.CommonFilter{Field: "price", Operator: types.CommonFilterOperatorLte, Values: []any{*req.PriceMax}})
	}

	tx := s.db.WithContext(ctx).Model(&models.Listing{}).
		Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: filters}}})

	if req.Query != "" {
		tx = tx.Where("title ILIKE ?", "%"+req.Query+"%")
	}
	if req.UpsellType != "" {
		expr, err := boostPredicate(req.UpsellType)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(expr)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	q := tx.Offset(req.From).Limit(req.Size)
	switch req.Sort {
	case types.ListingSortPriceLow:
		q = q.Order("price ASC")
	case types.ListingSortPriceHigh:
		q = q.Order("price DESC")
	case types.ListingSortNewest:
		q = q.Order("created_at DESC")
	case types.ListingSortOldest:
		q = q.Order("created_at ASC")
	default:
		q = q.Order(upsell.PriorityScoreExpr(s.cfg) + " DESC").Order("created_at DESC")
	}

	var rows []*models.Listing
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	return &SearchResponse{Items: rows, Total: total}, nil
}

// boostPredicate restricts results to listings whose boost of the given
// type is currently in force.
func boostPredicate(t types.UpsellType) (string, error) {
	switch t {
	case types.UpsellTypePriority:
		return "is_priority AND priority_expires_at > NOW()", nil
	case types.UpsellTypeFeatured:
		return "is_featured AND featured_expires_at > NOW()", nil
	case types.UpsellTypeSponsored:
		return "is_sponsored AND sponsored_expires_at > NOW()", nil
	case types.UpsellTypePremium:
		return "is_premium AND premium_expires_at > NOW()", nil
	}
	return "", fmt.Errorf("unknown upsell type filter %q", t)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Listing, error) {
	var row models.Listing
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	return &row, nil
}
