package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

var _ repository.LedgerProductRepository = (*ProductRepo)(nil)

// ProductRepo persistencia de productos sobre GORM (pasar db o tx).
type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(toProductModel(product)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) findOne(ctx context.Context, cond string, arg any) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return m.toEntity(), nil
}

// GetByID obtiene un producto por ID (activo o no). (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, "id = ?", id)
}

// GetForUpdate equivale a GetByID: con una sola conexión la tx ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOne(ctx, "sku = ?", sku)
}

// Update actualiza los datos descriptivos; la cantidad solo cambia vía SetQuantity.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", product.ID).Updates(map[string]any{
		"sku":           product.SKU,
		"name":          product.Name,
		"description":   product.Description,
		"price":         product.Price,
		"category":      string(product.Category),
		"min_threshold": product.MinThreshold,
		"updated_at":    product.UpdatedAt.UTC(),
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) SetQuantity(ctx context.Context, id string, qty decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Updates(map[string]any{
		"quantity":   qty,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		if isCheckViolation(res.Error) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("set product quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// activeProducts aplica los filtros del listado; siempre restringe a productos activos.
func activeProducts(f repository.ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("active = ?", true)
		if f.Search != "" {
			like := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
			db = db.Where(`(lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\' OR lower(sku) LIKE ? ESCAPE '\')`, like, like, like)
		}
		if f.Category != "" {
			db = db.Where("category = ?", string(f.Category))
		}
		if f.LowStockOnly {
			db = db.Where(num("quantity") + " <= " + num("min_threshold"))
		}
		return db
	}
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&productModel{}).Scopes(activeProducts(f)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var rows []productModel
	err := r.db.WithContext(ctx).Scopes(activeProducts(f)).
		Order("created_at DESC, id").Limit(f.Limit).Offset(f.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, int(total), nil
}

// SoftDelete marca el producto como inactivo.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Updates(map[string]any{
		"active":     false,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("soft delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
