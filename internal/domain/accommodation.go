package domain

import (
	"fmt"
	"time"
)

type Accommodation struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	City            string    `json:"city"`
	Address         string    `json:"address"`
	Description     string    `json:"description"`
	RoomType        string    `json:"room_type"`
	WeeklyRateCents int64     `json:"weekly_rate_cents"`
	Currency        string    `json:"currency"`
	Capacity        int       `json:"capacity"`
	ImageURL        string    `json:"image_url,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AccommodationReq struct {
	Name            string `json:"name"`
	City            string `json:"city"`
	Address         string `json:"address"`
	Description     string `json:"description"`
	RoomType        string `json:"room_type"`
	WeeklyRateCents int64  `json:"weekly_rate_cents"`
	Currency        string `json:"currency"`
	Capacity        int    `json:"capacity"`
	ImageURL        string `json:"image_url"`
	Active          *bool  `json:"active,omitempty"`
}

type AccommodationPatch struct {
	Name            *string `json:"name,omitempty"`
	City            *string `json:"city,omitempty"`
	Address         *string `json:"address,omitempty"`
	Description     *string `json:"description,omitempty"`
	RoomType        *string `json:"room_type,omitempty"`
	WeeklyRateCents *int64  `json:"weekly_rate_cents,omitempty"`
	Capacity        *int    `json:"capacity,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

func (r *AccommodationReq) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.City == "" {
		return fmt.Errorf("city is required")
	}
	if r.WeeklyRateCents <= 0 {
		return fmt.Errorf("weekly rate must be positive")
	}
	if r.Capacity < 0 {
		return fmt.Errorf("capacity cannot be negative")
	}
	return nil
}

func (r *AccommodationReq) Normalize() {
	if r.Currency == "" {
		r.Currency = "eur"
	}
}
