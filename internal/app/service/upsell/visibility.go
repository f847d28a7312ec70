package upsell

import (
	"fmt"
	"strings"
	"time"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/types"
)

// boostColumns maps an upsell type to its listing flag/expiry column pair.
func boostColumns(t types.UpsellType) (flagCol string, expiresCol string, err error) {
	switch t {
	case types.UpsellTypePriority:
		return "is_priority", "priority_expires_at", nil
	case types.UpsellTypeFeatured:
		return "is_featured", "featured_expires_at", nil
	case types.UpsellTypeSponsored:
		return "is_sponsored", "sponsored_expires_at", nil
	case types.UpsellTypePremium:
		return "is_premium", "premium_expires_at", nil
	}
	return "", "", fmt.Errorf("no visibility columns for upsell type %q", t)
}

// ApplyVisibilityEffect sets exactly the flag/expiry pair for t on the
// in-memory listing. Flags for other types are never touched so a listing
// can hold several boosts at once.
func ApplyVisibilityEffect(listing *models.Listing, t types.UpsellType, expiresAt time.Time) error {
	switch t {
	case types.UpsellTypePriority:
		listing.IsPriority = true
		listing.PriorityExpiresAt = &expiresAt
	case types.UpsellTypeFeatured:
		listing.IsFeatured = true
		listing.FeaturedExpiresAt = &expiresAt
	case types.UpsellTypeSponsored:
		listing.IsSponsored = true
		listing.SponsoredExpiresAt = &expiresAt
	case types.UpsellTypePremium:
		listing.IsPremium = true
		listing.PremiumExpiresAt = &expiresAt
	default:
		return fmt.Errorf("no visibility effect for upsell type %q", t)
	}
	return nil
}

// PriorityScoreExpr builds the SQL scoring expression used as the primary
// sort key for priority ordering. The listing's score is the highest weight
// among its currently-in-force boosts; weights come from the catalog so the
// premium > sponsored > featured > priority ranking is configuration, not
// hard-coded branches.
func PriorityScoreExpr(cfg *config.Config) string {
	cases := make([]string, 0, len(cfg.UpsellItems))
	for _, item := range cfg.UpsellItems {
		flagCol, expiresCol, err := boostColumns(item.Type)
		if err != nil {
			continue
		}
		cases = append(cases, fmt.Sprintf(
			"CASE WHEN %s AND %s > NOW() THEN %d ELSE 0 END",
			flagCol, expiresCol, item.PriorityWeight,
		))
	}
	if len(cases) == 0 {
		return "0"
	}
	if len(cases) == 1 {
		return cases[0]
	}
	return "GREATEST(" + strings.Join(cases, ", ") + ")"
}
