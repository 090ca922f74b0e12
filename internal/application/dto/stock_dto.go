package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock.
type RecordMovementRequest struct {
	ProductID   string          `json:"produitId"`
	Type        string          `json:"typeMouvement"`
	Quantity    decimal.Decimal `json:"quantiteMouvement"`
	Reason      string          `json:"motif"`
	OrderNumber string          `json:"numeroCommande,omitempty"`
	Supplier    string          `json:"fournisseur,omitempty"`
}

// UpdateMovementRequest body para PUT /api/stock/:id; solo campos de anotación.
type UpdateMovementRequest struct {
	Reason      *string `json:"motif"`
	OrderNumber *string `json:"numeroCommande"`
	Supplier    *string `json:"fournisseur"`
}

// MovementListRequest filtros de GET /api/stock. Las fechas aceptan YYYY-MM-DD o RFC 3339.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"produitId"`
	Type      string `query:"typeMouvement"`
	From      string `query:"dateDebut"`
	To        string `query:"dateFin"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"produitId"`
	Type           string          `json:"typeMouvement"`
	Quantity       decimal.Decimal `json:"quantiteMouvement"`
	QuantityBefore decimal.Decimal `json:"quantiteAvant"`
	QuantityAfter  decimal.Decimal `json:"quantiteApres"`
	Reason         string          `json:"motif"`
	UserID         string          `json:"utilisateur"`
	OrderNumber    string          `json:"numeroCommande,omitempty"`
	Supplier       string          `json:"fournisseur,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Movements  []MovementResponse `json:"movements"`
	Pagination MovementPagination `json:"pagination"`
}
