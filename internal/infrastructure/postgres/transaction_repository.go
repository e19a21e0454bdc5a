package postgres

import (
	"context"
	"fmt"

	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL (usable con pool o tx). El libro es append-only: no hay Update
// ni Delete individual.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia del libro. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// detailSelect resuelve nombres de producto, receptor y creador en una sola consulta.
const detailSelect = `
	SELECT t.id, t.product_id, t.kind, t.quantity, t.unit_price, t.vendor_name,
	       COALESCE(t.recipient_user_id::text, ''), t.remarks, t.created_by, t.transaction_date,
	       p.name, COALESCE(ru.name, ''), COALESCE(cu.name, '')
	FROM inventory_transactions t
	JOIN products p ON p.id = t.product_id
	LEFT JOIN users ru ON ru.id = t.recipient_user_id
	LEFT JOIN users cu ON cu.id = t.created_by`

// Create persiste una entrada del libro.
func (r *TransactionRepo) Create(transaction *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions
			(id, product_id, kind, quantity, unit_price, vendor_name, recipient_user_id, remarks, created_by, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		transaction.ID, transaction.ProductID, transaction.Kind, transaction.Quantity,
		transaction.UnitPrice, transaction.VendorName, nullIfEmpty(transaction.RecipientUserID),
		transaction.Remarks, transaction.CreatedBy, transaction.TransactionDate,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// SumByKind suma las cantidades de un tipo de movimiento para un producto.
func (r *TransactionRepo) SumByKind(productID, kind string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_transactions WHERE product_id = $1 AND kind = $2`,
		productID, kind,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return sum, nil
}

// CountByProduct cuenta todas las entradas del libro de un producto (incluye INITIAL).
func (r *TransactionRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_transactions WHERE product_id = $1`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// DeleteByProduct elimina las entradas de un producto (cascada del borrado de producto).
func (r *TransactionRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_transactions WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	return nil
}

// List devuelve entradas con referencias resueltas, más recientes primero.
func (r *TransactionRepo) List(limit, offset int) ([]*entity.TransactionDetail, error) {
	query := detailSelect + ` ORDER BY t.transaction_date DESC, t.id DESC LIMIT $1 OFFSET $2`
	return r.queryDetails(query, limit, offset)
}

// ListByProduct filtra por producto, más recientes primero.
func (r *TransactionRepo) ListByProduct(productID string, limit, offset int) ([]*entity.TransactionDetail, error) {
	query := detailSelect + ` WHERE t.product_id = $1 ORDER BY t.transaction_date DESC, t.id DESC LIMIT $2 OFFSET $3`
	return r.queryDetails(query, productID, limit, offset)
}

// ListByRecipient filtra por usuario receptor (solo OUT tienen receptor), más recientes primero.
func (r *TransactionRepo) ListByRecipient(recipientUserID string, limit, offset int) ([]*entity.TransactionDetail, error) {
	query := detailSelect + ` WHERE t.recipient_user_id = $1 ORDER BY t.transaction_date DESC, t.id DESC LIMIT $2 OFFSET $3`
	return r.queryDetails(query, recipientUserID, limit, offset)
}

// ListByProductAsc historial cronológico completo de un producto (saldo corriente).
func (r *TransactionRepo) ListByProductAsc(productID string) ([]*entity.TransactionDetail, error) {
	query := detailSelect + ` WHERE t.product_id = $1 ORDER BY t.transaction_date ASC, t.id ASC`
	return r.queryDetails(query, productID)
}

// ListPriced devuelve IN e INITIAL con precio unitario, más recientes primero.
// productID vacío incluye todos los productos.
func (r *TransactionRepo) ListPriced(productID string) ([]*entity.TransactionDetail, error) {
	query := detailSelect + `
		WHERE t.kind IN ('IN', 'INITIAL') AND t.unit_price IS NOT NULL
		  AND ($1::text IS NULL OR t.product_id = $1)
		ORDER BY t.transaction_date DESC, t.id DESC`
	return r.queryDetails(query, nullIfEmpty(productID))
}

// ListOut devuelve salidas filtrables por producto y/o receptor, en orden cronológico.
func (r *TransactionRepo) ListOut(productID, recipientUserID string) ([]*entity.TransactionDetail, error) {
	query := detailSelect + `
		WHERE t.kind = 'OUT'
		  AND ($1::text IS NULL OR t.product_id = $1)
		  AND ($2::text IS NULL OR t.recipient_user_id = $2)
		ORDER BY t.transaction_date ASC, t.id ASC`
	return r.queryDetails(query, nullIfEmpty(productID), nullIfEmpty(recipientUserID))
}

func (r *TransactionRepo) queryDetails(query string, args ...any) ([]*entity.TransactionDetail, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionDetail
	for rows.Next() {
		var d entity.TransactionDetail
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.Kind, &d.Quantity, &d.UnitPrice, &d.VendorName,
			&d.RecipientUserID, &d.Remarks, &d.CreatedBy, &d.TransactionDate,
			&d.ProductName, &d.RecipientName, &d.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
