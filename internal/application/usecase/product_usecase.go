package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

// InitialStockReason motivo del movimiento que registra la cantidad inicial de un producto.
const InitialStockReason = "Stock initial"

// ProductUseCase casos de uso del catálogo. La cantidad solo cambia vía el libro de movimientos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	statsRepo repository.StatsRepository
	txRunner  inventory.TxRunner
	ledger    *inventory.LedgerUseCase
	pageSize  int
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	statsRepo repository.StatsRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.LedgerUseCase,
	pageSize int,
) *ProductUseCase {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ProductUseCase{repo: repo, statsRepo: statsRepo, txRunner: txRunner, ledger: ledger, pageSize: pageSize}
}

// Create crea un producto. Si trae cantidad inicial, se registra como entrée en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := entity.NormalizeSKU(in.SKU)
	name := strings.TrimSpace(in.Name)
	switch {
	case sku == "":
		return nil, domain.Invalid("sku", "requis")
	case name == "":
		return nil, domain.Invalid("nom", "requis")
	case in.Price.IsNegative():
		return nil, domain.Invalid("prix", "ne peut pas être négatif")
	case in.Quantity.IsNegative():
		return nil, domain.Invalid("quantite", "ne peut pas être négative")
	case !entity.WithinDecimalBounds(in.Price):
		return nil, outOfBounds("prix")
	case !entity.WithinDecimalBounds(in.Quantity):
		return nil, outOfBounds("quantite")
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return nil, domain.Invalid("categorie", "valeur inconnue")
	}
	threshold := entity.DefaultMinThreshold
	if in.MinThreshold != nil {
		if in.MinThreshold.IsNegative() {
			return nil, domain.Invalid("seuilMinimum", "ne peut pas être négatif")
		}
		if !entity.WithinDecimalBounds(*in.MinThreshold) {
			return nil, outOfBounds("seuilMinimum")
		}
		threshold = *in.MinThreshold
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		Quantity:     decimal.Zero,
		Category:     category,
		MinThreshold: threshold,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if !in.Quantity.IsPositive() {
		if err := uc.repo.Create(ctx, product); err != nil {
			return nil, err
		}
		return toProductResponse(product), nil
	}

	if _, err := uc.ledger.ResolveActor(ctx, actorID, entity.WriterRoles...); err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.LedgerProductRepository, movRepo repository.StockMovementRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		mov, err := uc.ledger.RecordInTx(ctx, productRepo, movRepo, inventory.RecordMovementInput{
			ProductID: product.ID,
			UserID:    actorID,
			Type:      string(entity.MovementTypeIn),
			Quantity:  in.Quantity,
			Reason:    InitialStockReason,
		})
		if err != nil {
			return err
		}
		product.Quantity = mov.QuantityAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (los eliminados lógicamente siguen siendo legibles).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza un producto. No permite modificar la cantidad (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := entity.NormalizeSKU(*in.SKU)
		if sku == "" {
			return nil, domain.Invalid("sku", "requis")
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicateSKU
			}
			product.SKU = sku
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("nom", "requis")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("prix", "ne peut pas être négatif")
		}
		if !entity.WithinDecimalBounds(*in.Price) {
			return nil, outOfBounds("prix")
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		category, ok := entity.ParseCategory(*in.Category)
		if !ok {
			return nil, domain.Invalid("categorie", "valeur inconnue")
		}
		product.Category = category
	}
	if in.MinThreshold != nil {
		if in.MinThreshold.IsNegative() {
			return nil, domain.Invalid("seuilMinimum", "ne peut pas être négatif")
		}
		if !entity.WithinDecimalBounds(*in.MinThreshold) {
			return nil, outOfBounds("seuilMinimum")
		}
		product.MinThreshold = *in.MinThreshold
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos con búsqueda, categoría y filtro de stock bajo.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage(uc.pageSize, 100)
	filter := repository.ProductFilter{
		Search:       strings.TrimSpace(in.Search),
		LowStockOnly: in.LowStockOnly,
		Limit:        in.Limit,
		Offset:       in.Offset(),
	}
	if strings.TrimSpace(in.Category) != "" {
		category, ok := entity.ParseCategory(in.Category)
		if !ok {
			return nil, domain.Invalid("categorie", "valeur inconnue")
		}
		filter.Category = category
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:   items,
		Pagination: dto.NewProductPagination(in.PageRequest, total),
	}, nil
}

// Delete desactiva el producto (actif=false); el SKU queda reservado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

// Overview resumen del catálogo activo.
func (uc *ProductUseCase) Overview(ctx context.Context) (*dto.ProductOverviewResponse, error) {
	ov, err := uc.statsRepo.Overview(ctx)
	if err != nil {
		return nil, err
	}
	cats := make([]dto.CategoryCountDTO, 0, len(ov.Categories))
	for _, c := range ov.Categories {
		cats = append(cats, dto.CategoryCountDTO{Category: string(c.Category), Count: c.Count})
	}
	return &dto.ProductOverviewResponse{
		TotalProducts:    ov.TotalProducts,
		LowStockProducts: ov.LowStockProducts,
		CategoryStats:    cats,
		TotalValue:       ov.TotalValue,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Category:     string(p.Category),
		MinThreshold: p.MinThreshold,
		Active:       p.Active,
		LowStock:     p.LowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func outOfBounds(field string) error {
	return domain.Invalid(field, "4 décimales maximum et inférieur à 10^14")
}
