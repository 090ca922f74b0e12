package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Quantity > 0 se registra como entrada inicial en el libro de movimientos.
type CreateProductRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"nom"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"prix"`
	Quantity     decimal.Decimal  `json:"quantite"`
	Category     string           `json:"categorie"`
	MinThreshold *decimal.Decimal `json:"seuilMinimum"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad: solo vía movimientos).
type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"nom"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"prix"`
	Category     *string          `json:"categorie"`
	MinThreshold *decimal.Decimal `json:"seuilMinimum"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search       string `query:"search"`
	Category     string `query:"categorie"`
	LowStockOnly bool   `query:"stockFaible"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"nom"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"prix"`
	Quantity     decimal.Decimal `json:"quantite"`
	Category     string          `json:"categorie"`
	MinThreshold decimal.Decimal `json:"seuilMinimum"`
	Active       bool            `json:"actif"`
	LowStock     bool            `json:"stockFaible"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination ProductPagination `json:"pagination"`
}

// CategoryCountDTO productos activos por categoría.
type CategoryCountDTO struct {
	Category string `json:"categorie"`
	Count    int    `json:"count"`
}

// ProductOverviewResponse respuesta de GET /api/products/stats/overview.
type ProductOverviewResponse struct {
	TotalProducts    int                `json:"totalProducts"`
	LowStockProducts int                `json:"lowStockProducts"`
	CategoryStats    []CategoryCountDTO `json:"categoryStats"`
	TotalValue       decimal.Decimal    `json:"totalValue"`
}

// ReplenishmentSuggestionDTO producto a reponer con su cantidad sugerida.
type ReplenishmentSuggestionDTO struct {
	Priority          int             `json:"priorite"`
	ProductID         string          `json:"produitId"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"nom"`
	Category          string          `json:"categorie"`
	CurrentStock      decimal.Decimal `json:"quantite"`
	MinThreshold      decimal.Decimal `json:"seuilMinimum"`
	IdealStock        decimal.Decimal `json:"stockIdeal"`
	SuggestedOrderQty decimal.Decimal `json:"quantiteSuggeree"`
	UnitPrice         decimal.Decimal `json:"prix"`
	EstimatedCost     decimal.Decimal `json:"coutEstime"`
	Outbound          decimal.Decimal `json:"sortiesPeriode"`
}

// ReplenishmentResponse respuesta de GET /api/stock/replenishment.
type ReplenishmentResponse struct {
	WindowDays         int                          `json:"periodeJours"`
	TotalEstimatedCost decimal.Decimal              `json:"coutTotalEstime"`
	Suggestions        []ReplenishmentSuggestionDTO `json:"suggestions"`
}
