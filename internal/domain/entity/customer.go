package entity

import "time"

// Customer representa un cliente de un tenant. El email no es único.
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
