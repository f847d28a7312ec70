package types

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "active"
	ListingStatusPaused   ListingStatus = "paused"
	ListingStatusArchived ListingStatus = "archived"
)

type ListingSort string

const (
	ListingSortPriority  ListingSort = "priority"
	ListingSortPriceLow  ListingSort = "price_low"
	ListingSortPriceHigh ListingSort = "price_high"
	ListingSortNewest    ListingSort = "newest"
	ListingSortOldest    ListingSort = "oldest"
)
