package inventory

import (
	"context"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
)

// RecordFromRequest adapta el request HTTP al caso de uso Record(ctx, RecordMovementInput).
// userID es el actor autenticado; nunca se toma del body.
func (uc *LedgerUseCase) RecordFromRequest(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	return uc.Record(ctx, RecordMovementInput{
		ProductID:   in.ProductID,
		UserID:      userID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		OrderNumber: in.OrderNumber,
		Supplier:    in.Supplier,
	})
}
