package entity

import "time"

// Delivery datos de envío asociados 1:1 a una transacción (value object pass-through).
type Delivery struct {
	ID            string
	TransactionID string
	Address       string
	City          string
	PostalCode    string
	Phone         string
	CreatedAt     time.Time
}
