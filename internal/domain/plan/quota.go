// Package plan contiene las reglas de cupo por plan de suscripción.
package plan

import "github.com/jhoicas/stockpro-api/internal/domain/entity"

// Kind tipo de registro sujeto a cupo.
type Kind string

const (
	KindProduct  Kind = "product"
	KindCustomer Kind = "customer"
)

const (
	FreeProductLimit  = 50
	FreeCustomerLimit = 20
)

// Limit devuelve el máximo de registros para kind en el plan tier.
// ok es false cuando no hay límite.
func Limit(kind Kind, tier string) (limit int, ok bool) {
	if tier == entity.PlanPremium {
		return 0, false
	}
	switch kind {
	case KindProduct:
		return FreeProductLimit, true
	case KindCustomer:
		return FreeCustomerLimit, true
	}
	return 0, false
}

// CanCreate informa si un tenant con currentCount registros de kind puede crear otro.
// Premium nunca tiene límite; free admite hasta 50 productos y 20 clientes.
func CanCreate(kind Kind, currentCount int, tier string) bool {
	limit, ok := Limit(kind, tier)
	if !ok {
		return true
	}
	return currentCount < limit
}
