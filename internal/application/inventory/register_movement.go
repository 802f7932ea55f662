package inventory

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/application/dto"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement(ctx, MovementInput).
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, in dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	return uc.RecordMovement(ctx, MovementInput{
		SKU:      in.SKU,
		Kind:     in.Kind,
		Quantity: in.Quantity,
		Reason:   in.Reason,
	})
}
