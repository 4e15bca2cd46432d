package model

import "time"

// Order is one payment attempt. It says nothing about whether the payment
// went through.
type Order struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"created_date"`
}
