package models

// Product represents a catalog entry. Products are seeded at startup and never change afterwards.
type Product struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Volume      string `json:"volume" validate:"required"`
	Price       int    `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"omitempty,oneof=premium classic kids sports cooler medical"`
}
