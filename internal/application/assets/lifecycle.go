package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// LifecycleUseCase ejecuta las transiciones assign / return / transfer.
// Cada operación bloquea la fila del activo (SELECT FOR UPDATE) antes de
// consultar la asignación activa, de modo que dos transiciones concurrentes
// sobre el mismo activo se serializan.
type LifecycleUseCase struct {
	txRunner    TxRunner
	assets      repository.AssetRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	txRunner TxRunner,
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:    txRunner,
		assets:      assets,
		assignments: assignments,
		users:       users,
	}
}

// Assign entrega un activo sin asignación activa a un usuario.
// El activo queda en ASSIGNED y se abre una fila con handoverDate NULL.
func (uc *LifecycleUseCase) Assign(ctx context.Context, assetID string, in dto.AssignAssetRequest, actingUserID string) (*dto.AssignmentResponse, error) {
	issueDate, err := parseDate(in.IssueDate)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUserExists(in.AssignedToUserID); err != nil {
		return nil, err
	}

	assignment := &entity.AssetAssignment{
		ID:               uuid.New().String(),
		AssetID:          assetID,
		AssignedToUserID: in.AssignedToUserID,
		AssignedByUserID: actingUserID,
		IssueDate:        issueDate,
		Remarks:          in.Remarks,
		CreatedAt:        time.Now(),
	}
	err = uc.txRunner.RunAssets(ctx, func(assetRepo repository.AssetRepository, assignmentRepo repository.AssignmentRepository) error {
		asset, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetID)
		}
		active, err := assignmentRepo.GetActiveByAsset(assetID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("%w: el activo ya tiene una asignación activa", domain.ErrInvalidState)
		}
		if err := assignmentRepo.Create(assignment); err != nil {
			return err
		}
		return assetRepo.UpdateStatus(assetID, entity.AssetAssigned)
	})
	if err != nil {
		return nil, err
	}
	resp := toAssignmentResponse(&entity.AssignmentDetail{AssetAssignment: *assignment})
	return &resp, nil
}

// Return cierra la asignación activa de un activo y lo deja en AVAILABLE.
// El historial conserva la fila cerrada.
func (uc *LifecycleUseCase) Return(ctx context.Context, assetID string, in dto.ReturnAssetRequest) (*dto.AssignmentResponse, error) {
	handoverDate, err := parseDate(in.HandoverDate)
	if err != nil {
		return nil, err
	}

	var closed *entity.AssetAssignment
	err = uc.txRunner.RunAssets(ctx, func(assetRepo repository.AssetRepository, assignmentRepo repository.AssignmentRepository) error {
		asset, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetID)
		}
		active, err := assignmentRepo.GetActiveByAsset(assetID)
		if err != nil {
			return err
		}
		if active == nil {
			return fmt.Errorf("%w: el activo no tiene asignación activa", domain.ErrInvalidState)
		}
		if err := assignmentRepo.Close(active.ID, handoverDate, in.Remarks); err != nil {
			return err
		}
		active.HandoverDate = &handoverDate
		if in.Remarks != "" {
			active.Remarks = in.Remarks
		}
		closed = active
		return assetRepo.UpdateStatus(assetID, entity.AssetAvailable)
	})
	if err != nil {
		return nil, err
	}
	resp := toAssignmentResponse(&entity.AssignmentDetail{AssetAssignment: *closed})
	return &resp, nil
}

// Transfer cierra la asignación activa con la fecha de emisión de la nueva
// y abre otra hacia el destinatario, todo en una transacción. El activo
// permanece en ASSIGNED sin pasar por AVAILABLE.
func (uc *LifecycleUseCase) Transfer(ctx context.Context, assetID string, in dto.TransferAssetRequest, actingUserID string) (*dto.AssignmentResponse, error) {
	issueDate, err := parseDate(in.IssueDate)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUserExists(in.AssignedToUserID); err != nil {
		return nil, err
	}

	assignment := &entity.AssetAssignment{
		ID:               uuid.New().String(),
		AssetID:          assetID,
		AssignedToUserID: in.AssignedToUserID,
		AssignedByUserID: actingUserID,
		IssueDate:        issueDate,
		Remarks:          in.Remarks,
		CreatedAt:        time.Now(),
	}
	err = uc.txRunner.RunAssets(ctx, func(assetRepo repository.AssetRepository, assignmentRepo repository.AssignmentRepository) error {
		asset, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetID)
		}
		active, err := assignmentRepo.GetActiveByAsset(assetID)
		if err != nil {
			return err
		}
		if active == nil {
			return fmt.Errorf("%w: el activo no tiene asignación activa", domain.ErrInvalidState)
		}
		if err := assignmentRepo.Close(active.ID, issueDate, ""); err != nil {
			return err
		}
		return assignmentRepo.Create(assignment)
	})
	if err != nil {
		return nil, err
	}
	resp := toAssignmentResponse(&entity.AssignmentDetail{AssetAssignment: *assignment})
	return &resp, nil
}

func (uc *LifecycleUseCase) ensureUserExists(userID string) error {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q, se espera YYYY-MM-DD", domain.ErrValidation, raw)
	}
	return d, nil
}
