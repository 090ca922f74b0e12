package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

const maxHistoryLimit = 500

// Options valores por defecto de listados.
type Options struct {
	HistoryLimit int // default 50
	PageSize     int // default 10
	MaxPageSize  int // default 100
}

func (o *Options) defaults() {
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = 50
	}
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 100
	}
}

// LedgerUseCase libro de movimientos de stock: única vía para cambiar la cantidad disponible de un producto.
// Cada registro lee el producto con bloqueo de fila (SELECT FOR UPDATE), aplica la política del tipo,
// inserta el movimiento y fija la nueva cantidad en la misma transacción.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	userRepo repository.UserRepository
	log      *logger.Logger
	opts     Options
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
	opts Options,
) *LedgerUseCase {
	opts.defaults()
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		userRepo: userRepo,
		log:      log,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordMovementInput entrada para registrar un movimiento. UserID es el actor explícito.
type RecordMovementInput struct {
	ProductID   string
	UserID      string
	Type        string
	Quantity    decimal.Decimal
	Reason      string
	OrderNumber string
	Supplier    string
}

// Record registra un movimiento de forma transaccional y devuelve el registro creado.
//
// Errores: ErrUserNotFound / ErrForbidden (actor ausente, inactivo o sin rol de escritura), ErrNotFound (producto ausente o inactivo),
// ErrInvalidMovementType, ErrInvalidAmount, ErrInsufficientStock.
func (uc *LedgerUseCase) Record(ctx context.Context, in RecordMovementInput) (*dto.MovementResponse, error) {
	if _, err := uc.ResolveActor(ctx, in.UserID, entity.WriterRoles...); err != nil {
		return nil, err
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.LedgerProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		mov, err := uc.RecordInTx(ctx, productRepo, movRepo, in)
		if err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		ev := uc.log.Error()
		if IsBusinessError(err) {
			ev = uc.log.Debug()
		}
		ev.Err(err).
			Str("product_id", in.ProductID).
			Str("type", in.Type).
			Str("quantity", in.Quantity.String()).
			Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", created.ID).
		Str("product_id", created.ProductID).
		Str("type", string(created.Type)).
		Str("before", created.QuantityBefore.String()).
		Str("after", created.QuantityAfter.String()).
		Str("user_id", created.UserID).
		Msg("movimiento registrado")
	return toMovementResponse(created), nil
}

// RecordInTx aplica un movimiento con repositorios atados a una transacción abierta por el caller
// (alta de producto con stock inicial, importación de catálogo). No valida el actor.
func (uc *LedgerUseCase) RecordInTx(
	ctx context.Context,
	productRepo repository.LedgerProductRepository,
	movRepo repository.StockMovementRepository,
	in RecordMovementInput,
) (*entity.StockMovement, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("produitId", "requis")
	}
	if !isUUID(in.ProductID) {
		return nil, domain.ErrNotFound
	}

	// Bloquea la fila del producto hasta el Commit para serializar movimientos concurrentes
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}

	typ, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return nil, domain.ErrInvalidMovementType
	}
	outcome, err := inventory.ApplyMovement(product.Quantity, typ, in.Quantity)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		Type:           typ,
		Quantity:       outcome.Stored,
		QuantityBefore: outcome.Before,
		QuantityAfter:  outcome.After,
		Reason:         strings.TrimSpace(in.Reason),
		UserID:         in.UserID,
		OrderNumber:    strings.TrimSpace(in.OrderNumber),
		Supplier:       strings.TrimSpace(in.Supplier),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := productRepo.SetQuantity(ctx, product.ID, outcome.After); err != nil {
		return nil, err
	}
	return mov, nil
}

// ResolveActor verifica que el usuario exista y esté activo. Con roles, exige además que el rol
// guardado en base esté entre ellos: el claim del token puede haber quedado obsoleto.
func (uc *LedgerUseCase) ResolveActor(ctx context.Context, userID string, roles ...string) (*entity.User, error) {
	if !isUUID(userID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	if len(roles) > 0 && !user.HasRole(roles...) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Get obtiene un movimiento por ID.
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*dto.MovementResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

// List lista movimientos con filtros cerrados, del más reciente al más antiguo.
func (uc *LedgerUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	filter, err := uc.movementFilter(&in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Movements:  toMovementResponses(list),
		Pagination: dto.NewMovementPagination(in.PageRequest, total),
	}, nil
}

// movementFilter valida los parámetros antes de llegar al repositorio.
func (uc *LedgerUseCase) movementFilter(in *dto.MovementListRequest) (repository.MovementFilter, error) {
	in.DefaultPage(uc.opts.PageSize, uc.opts.MaxPageSize)
	f := repository.MovementFilter{Limit: in.Limit, Offset: in.Offset()}

	if id := strings.TrimSpace(in.ProductID); id != "" {
		if !isUUID(id) {
			return f, domain.Invalid("produitId", "identifiant invalide")
		}
		f.ProductID = id
	}
	if strings.TrimSpace(in.Type) != "" {
		typ, ok := entity.ParseMovementType(in.Type)
		if !ok {
			return f, domain.ErrInvalidMovementType
		}
		f.Type = typ
	}
	from, err := dto.ParseDate(in.From, false)
	if err != nil {
		return f, domain.Invalid("dateDebut", err.Error())
	}
	to, err := dto.ParseDate(in.To, true)
	if err != nil {
		return f, domain.Invalid("dateFin", err.Error())
	}
	if from != nil && to != nil && from.After(*to) {
		return f, domain.Invalid("dateDebut", "postérieure à dateFin")
	}
	f.From, f.To = from, to
	return f, nil
}

// History devuelve los últimos movimientos de un producto (limit <= 0 usa el valor por defecto).
func (uc *LedgerUseCase) History(ctx context.Context, productID string, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = uc.opts.HistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if !isUUID(productID) {
		return []dto.MovementResponse{}, nil
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// UpdateAnnotations modifica motivo, número de pedido y proveedor. Cantidades y tipo son inmutables.
// Solo un admin activo puede anotar.
func (uc *LedgerUseCase) UpdateAnnotations(ctx context.Context, actorID, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	if _, err := uc.ResolveActor(ctx, actorID, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	patch := entity.MovementAnnotations{
		Reason:      trimmed(in.Reason),
		OrderNumber: trimmed(in.OrderNumber),
		Supplier:    trimmed(in.Supplier),
	}
	mov, err := uc.movRepo.UpdateAnnotations(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsBusinessError indica si err es un rechazo esperado (no un fallo de infraestructura).
func IsBusinessError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrForbidden)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		UserID:         m.UserID,
		OrderNumber:    m.OrderNumber,
		Supplier:       m.Supplier,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out
}
