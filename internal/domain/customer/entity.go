package customer

import "time"

type Customer struct {
	ID         string
	Name       string
	Email      *string
	Phone      *string
	Address    *string
	City       *string
	IsProspect bool
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
