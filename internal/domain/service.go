package domain

import "time"

// Service is a repair service offered by the shop
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
