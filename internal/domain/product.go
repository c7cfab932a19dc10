package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"imageUrl"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	PriceCents      int64     `json:"priceCents"`
	OfferPriceCents *int64    `json:"offerPriceCents,omitempty"`
	AverageRating   *float64  `json:"averageRating,omitempty"`
	ReviewCount     *int      `json:"reviewCount,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}
