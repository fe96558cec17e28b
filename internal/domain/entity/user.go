package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Planes de suscripción.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// User representa una cuenta del sistema. Cada usuario es su propio tenant:
// productos, clientes y ventas se guardan bajo su ID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Phone        string
	Company      string
	Role         string // user, admin
	Plan         string // free, premium (lo cambia un admin)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPremium informa si el usuario tiene el plan premium.
func (u *User) IsPremium() bool {
	return u.Plan == PlanPremium
}
