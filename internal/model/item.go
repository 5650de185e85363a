package model

// Item represents a wishlist entry.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	Image       string `json:"image,omitempty"`
	Price       string `json:"price,omitempty"`
	Status      string `json:"status"`
	Claimer     string `json:"claimer,omitempty"`
}

// Item statuses. Claimer is set exactly when the status is claimed.
const (
	StatusAvailable = "available"
	StatusClaimed   = "claimed"
)
