package models

import "time"

// Category is one node of the classified category tree.
type Category struct {
	ID           string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	ParentID     *string   `gorm:"column:parent_id;type:uuid;index;default:null" json:"parent_id"`
	Name         string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Slug         string    `gorm:"column:slug;type:varchar(128);not null;uniqueIndex" json:"slug"`
	SortOrder    int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	ListingCount int64     `gorm:"column:listing_count;not null;default:0" json:"listing_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "category"
}
