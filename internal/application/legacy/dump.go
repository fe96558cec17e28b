// Package legacy importa el volcado JSON del almacenamiento del navegador de la
// versión web anterior (claves stockpro_users, stockpro_products_<id>, ...).
package legacy

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	keyUsers           = "stockpro_users"
	keyProductsPrefix  = "stockpro_products_"
	keyCustomersPrefix = "stockpro_customers_"
	keySalesPrefix     = "stockpro_sales_"
)

// User registro de usuario del volcado. Password está en texto plano.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Password  string `json:"password"`
	Plan      string `json:"plan"`
	IsPremium bool   `json:"isPremium"`
	CreatedAt string `json:"createdAt"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    *int            `json:"minStock"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Sale struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId"`
	ProductID    string          `json:"productId"`
	CustomerName string          `json:"customerName"`
	ProductName  string          `json:"productName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Date         string          `json:"date"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// TenantData colecciones de un usuario del volcado.
type TenantData struct {
	Products  []Product
	Customers []Customer
	Sales     []Sale
}

// Dump volcado completo ya decodificado.
type Dump struct {
	Users   []User
	Tenants map[string]*TenantData // por id legacy del usuario
}

// ParseDump lee el volcado. Cada valor puede venir como JSON directo o como
// string con JSON dentro (tal cual lo guarda localStorage). Claves ajenas se ignoran.
func ParseDump(r io.Reader) (*Dump, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("legacy: decodificar volcado: %w", err)
	}
	d := &Dump{Users: make([]User, 0), Tenants: make(map[string]*TenantData)}
	tenant := func(id string) *TenantData {
		t, ok := d.Tenants[id]
		if !ok {
			t = &TenantData{}
			d.Tenants[id] = t
		}
		return t
	}
	for key, value := range raw {
		var err error
		switch {
		case key == keyUsers:
			err = decodeValue(value, &d.Users)
		case strings.HasPrefix(key, keyProductsPrefix):
			err = decodeValue(value, &tenant(strings.TrimPrefix(key, keyProductsPrefix)).Products)
		case strings.HasPrefix(key, keyCustomersPrefix):
			err = decodeValue(value, &tenant(strings.TrimPrefix(key, keyCustomersPrefix)).Customers)
		case strings.HasPrefix(key, keySalesPrefix):
			err = decodeValue(value, &tenant(strings.TrimPrefix(key, keySalesPrefix)).Sales)
		}
		if err != nil {
			return nil, fmt.Errorf("legacy: clave %s: %w", key, err)
		}
	}
	return d, nil
}

func decodeValue(value json.RawMessage, dst any) error {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		value = json.RawMessage(s)
	}
	return json.Unmarshal(value, dst)
}
