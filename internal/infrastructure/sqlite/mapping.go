package sqlite

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
)

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isCheckViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || strings.Contains(err.Error(), "CHECK constraint failed")
}

// num convierte una columna decimal (TEXT) a valor numérico dentro de una expresión SQL.
func num(col string) string {
	return "CAST(" + col + " AS NUMERIC)"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toProductModel(p *entity.Product) *productModel {
	return &productModel{
		ID: p.ID, SKU: p.SKU, Name: p.Name, Description: p.Description,
		Price: p.Price, Quantity: p.Quantity, Category: string(p.Category),
		MinThreshold: p.MinThreshold, Active: p.Active,
		CreatedAt: p.CreatedAt.UTC(), UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func (m *productModel) toEntity() *entity.Product {
	return &entity.Product{
		ID: m.ID, SKU: m.SKU, Name: m.Name, Description: m.Description,
		Price: m.Price, Quantity: m.Quantity, Category: entity.Category(m.Category),
		MinThreshold: m.MinThreshold, Active: m.Active,
		CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func toMovementModel(s *entity.StockMovement) *movementModel {
	return &movementModel{
		ID: s.ID, ProductID: s.ProductID, Type: string(s.Type),
		Quantity: s.Quantity, QuantityBefore: s.QuantityBefore, QuantityAfter: s.QuantityAfter,
		Reason: s.Reason, UserID: s.UserID, OrderNumber: s.OrderNumber, Supplier: s.Supplier,
		CreatedAt: s.CreatedAt.UTC(), UpdatedAt: s.UpdatedAt.UTC(),
	}
}

func (m *movementModel) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID: m.ID, ProductID: m.ProductID, Type: entity.MovementType(m.Type),
		Quantity: m.Quantity, QuantityBefore: m.QuantityBefore, QuantityAfter: m.QuantityAfter,
		Reason: m.Reason, UserID: m.UserID, OrderNumber: m.OrderNumber, Supplier: m.Supplier,
		CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func toUserModel(u *entity.User) *userModel {
	return &userModel{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status,
		CreatedAt: u.CreatedAt.UTC(), UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role, Status: m.Status,
		CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC(),
	}
}
