package models

import (
	"time"

	"github.com/quicklist/marketplace/pkg/types"

	"github.com/shopspring/decimal"
)

type RevenueEntryType string

const (
	RevenueEntryTypeUpsell RevenueEntryType = "upsell"
)

type RevenueEntryStatus string

const (
	RevenueEntryStatusCompleted RevenueEntryStatus = "completed"
)

// RevenueEntry 收入流水，仅追加，创建后不再修改。
// The unique transaction_id index is the storage-level idempotency guard for
// payment completion: replaying the same transaction cannot append twice.
type RevenueEntry struct {
	ID            string              `gorm:"column:id;primary_key;type:uuid" json:"id"`
	EntryType     RevenueEntryType    `gorm:"column:entry_type;type:varchar(32);not null" json:"entry_type"`
	UpsellID      string              `gorm:"column:upsell_id;type:uuid;not null;index" json:"upsell_id"`
	CustomerID    string              `gorm:"column:customer_id;type:varchar(64);not null;index" json:"customer_id"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Currency      string              `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	PaymentMethod types.PaymentMethod `gorm:"column:payment_method;type:varchar(32);not null" json:"payment_method"`
	TransactionID string              `gorm:"column:transaction_id;type:varchar(128);not null;uniqueIndex" json:"transaction_id"`
	Status        RevenueEntryStatus  `gorm:"column:status;type:varchar(32);not null" json:"status"`
	RecordedAt    time.Time           `gorm:"column:recorded_at;not null" json:"recorded_at"`
	CreatedAt     time.Time           `json:"created_at"`
}

func (RevenueEntry) TableName() string {
	return "revenue_entry"
}
