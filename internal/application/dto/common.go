package dto

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y precios viajan como números JSON, no como cadenas.
	decimal.MarshalJSONWithoutQuotes = true
}

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto y acota Limit a maxLimit.
func (p *PageRequest) DefaultPage(defaultLimit, maxLimit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}

// Offset desplazamiento equivalente a la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// MovementPagination metadatos de página de GET /api/stock.
type MovementPagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalMovements int  `json:"totalMovements"`
	HasNext        bool `json:"hasNext"`
	HasPrev        bool `json:"hasPrev"`
}

// ProductPagination metadatos de página de GET /api/products.
type ProductPagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
}

func totalPages(p PageRequest, total int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// NewMovementPagination calcula los metadatos a partir del total sin paginar.
func NewMovementPagination(p PageRequest, total int) MovementPagination {
	pages := totalPages(p, total)
	return MovementPagination{
		CurrentPage:    p.Page,
		TotalPages:     pages,
		TotalMovements: total,
		HasNext:        p.Page < pages,
		HasPrev:        p.Page > 1,
	}
}

// NewProductPagination calcula los metadatos a partir del total sin paginar.
func NewProductPagination(p PageRequest, total int) ProductPagination {
	pages := totalPages(p, total)
	return ProductPagination{
		CurrentPage:   p.Page,
		TotalPages:    pages,
		TotalProducts: total,
		HasNext:       p.Page < pages,
		HasPrev:       p.Page > 1,
	}
}

// Response sobre de respuesta exitosa.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Code es estable (VALIDATION, NOT_FOUND, ...).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

// OK construye un sobre exitoso.
func OK(data any, message string) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail construye un sobre de error (success=false).
func Fail(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}
