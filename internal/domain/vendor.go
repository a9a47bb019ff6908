package domain

import "time"

// Vendor is an equipment supplier orders are placed with.
type Vendor struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// Site is a construction site orders are delivered to.
type Site struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
