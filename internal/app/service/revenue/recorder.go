package revenue

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/tool"
)

// Recorder appends immutable ledger entries. Record runs on the caller's
// transaction handle so a ledger failure rolls back the whole payment
// completion instead of leaving a completed payment with no trace.
type Recorder struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewRecorder(db *gorm.DB, log *zap.SugaredLogger) *Recorder {
	return &Recorder{db: db, log: log}
}

func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, entry *models.RevenueEntry) error {
	if entry == nil {
		return fmt.Errorf("nil revenue entry")
	}
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	if entry.Status == "" {
		entry.Status = models.RevenueEntryStatusCompleted
	}
	if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append revenue entry: %w", err)
	}
	return nil
}

// ListByCustomer returns a customer's ledger entries, newest first.
func (r *Recorder) ListByCustomer(ctx context.Context, customerID string) ([]*models.RevenueEntry, error) {
	var rows []*models.RevenueEntry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("recorded_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue entries: %w", err)
	}
	return rows, nil
}
