package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación del puerto AssignmentRepository sobre
// PostgreSQL (usable con pool o tx). El historial es append-only: las filas
// se cierran fijando handover_date, nunca se borran.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador de persistencia de asignaciones. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, asset_id, assigned_to_user_id, assigned_by_user_id, issue_date, handover_date, remarks, created_at`

// Create persiste una nueva asignación (handover_date NULL la marca activa).
func (r *AssignmentRepo) Create(assignment *entity.AssetAssignment) error {
	query := `
		INSERT INTO asset_assignments (id, asset_id, assigned_to_user_id, assigned_by_user_id, issue_date, handover_date, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		assignment.ID, assignment.AssetID, assignment.AssignedToUserID, assignment.AssignedByUserID,
		assignment.IssueDate, assignment.HandoverDate, assignment.Remarks, assignment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetActiveByAsset devuelve la asignación activa del activo o nil si no existe.
func (r *AssignmentRepo) GetActiveByAsset(assetID string) (*entity.AssetAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM asset_assignments WHERE asset_id = $1 AND handover_date IS NULL`
	var a entity.AssetAssignment
	err := r.q.QueryRow(context.Background(), query, assetID).Scan(
		&a.ID, &a.AssetID, &a.AssignedToUserID, &a.AssignedByUserID,
		&a.IssueDate, &a.HandoverDate, &a.Remarks, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active assignment: %w", err)
	}
	return &a, nil
}

// Close fija handover_date en la asignación; si remarks no es vacío,
// reemplaza las observaciones.
func (r *AssignmentRepo) Close(id string, handoverDate time.Time, remarks string) error {
	query := `
		UPDATE asset_assignments
		SET handover_date = $2, remarks = CASE WHEN $3 <> '' THEN $3 ELSE remarks END
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, handoverDate, remarks)
	if err != nil {
		return fmt.Errorf("close assignment: %w", err)
	}
	return nil
}

// ListByAsset historial completo de un activo con nombres resueltos,
// más recientes primero por issue_date.
func (r *AssignmentRepo) ListByAsset(assetID string) ([]*entity.AssignmentDetail, error) {
	query := `
		SELECT s.id, s.asset_id, s.assigned_to_user_id, s.assigned_by_user_id,
		       s.issue_date, s.handover_date, s.remarks, s.created_at,
		       COALESCE(tu.name, ''), COALESCE(bu.name, '')
		FROM asset_assignments s
		LEFT JOIN users tu ON tu.id = s.assigned_to_user_id
		LEFT JOIN users bu ON bu.id = s.assigned_by_user_id
		WHERE s.asset_id = $1
		ORDER BY s.issue_date DESC, s.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, assetID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssignmentDetail
	for rows.Next() {
		var d entity.AssignmentDetail
		if err := rows.Scan(&d.ID, &d.AssetID, &d.AssignedToUserID, &d.AssignedByUserID,
			&d.IssueDate, &d.HandoverDate, &d.Remarks, &d.CreatedAt,
			&d.AssignedToName, &d.AssignedByName); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListActiveByUser devuelve las asignaciones vigentes de un usuario.
func (r *AssignmentRepo) ListActiveByUser(userID string) ([]*entity.AssetAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM asset_assignments WHERE assigned_to_user_id = $1 AND handover_date IS NULL ORDER BY issue_date DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list active assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssetAssignment
	for rows.Next() {
		var a entity.AssetAssignment
		if err := rows.Scan(&a.ID, &a.AssetID, &a.AssignedToUserID, &a.AssignedByUserID,
			&a.IssueDate, &a.HandoverDate, &a.Remarks, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
