package dto

// ErrorResponse cuerpo de error HTTP. Details lleva datos extra según Code
// (p. ej. unidades disponibles en INSUFFICIENT_STOCK o campos en VALIDATION).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// StockDetails detalle de INSUFFICIENT_STOCK.
type StockDetails struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}
