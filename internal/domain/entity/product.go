package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías sugeridas para productos. Category acepta también texto libre.
const (
	CategoryElectronics = "Eletrônicos"
	CategoryClothing    = "Roupas"
	CategoryHome        = "Casa"
	CategorySports      = "Esportes"
	CategoryBooks       = "Livros"
	CategoryOther       = "Outros"
)

// DefaultMinStock punto de reorden por defecto al crear un producto.
const DefaultMinStock = 10

// Categories devuelve las categorías predefinidas en orden de presentación.
func Categories() []string {
	return []string{
		CategoryElectronics, CategoryClothing, CategoryHome,
		CategorySports, CategoryBooks, CategoryOther,
	}
}

// Product representa un producto del inventario de un tenant.
// Quantity es el stock actual; MinStock el umbral de reposición. Ambos enteros >= 0.
type Product struct {
	ID          string
	TenantID    string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal // precio de venta, >= 0
	Quantity    int
	MinStock    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock informa si el stock está en o por debajo del punto de reorden (inclusivo).
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
