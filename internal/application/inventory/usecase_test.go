package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/application/inventory"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)      { return r.products[id], nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		list = append(list, p)
	}
	return list, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error         { delete(r.products, id); return nil }

type fakeTxRepo struct {
	entries []*entity.InventoryTransaction
}

func (r *fakeTxRepo) Create(t *entity.InventoryTransaction) error {
	r.entries = append(r.entries, t)
	return nil
}
func (r *fakeTxRepo) SumByKind(productID, kind string) (int64, error) {
	var sum int64
	for _, t := range r.entries {
		if t.ProductID == productID && t.Kind == kind {
			sum += t.Quantity
		}
	}
	return sum, nil
}
func (r *fakeTxRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	for _, t := range r.entries {
		if t.ProductID == productID {
			count++
		}
	}
	return count, nil
}
func (r *fakeTxRepo) DeleteByProduct(productID string) error {
	var kept []*entity.InventoryTransaction
	for _, t := range r.entries {
		if t.ProductID != productID {
			kept = append(kept, t)
		}
	}
	r.entries = kept
	return nil
}
func (r *fakeTxRepo) details(filter func(*entity.InventoryTransaction) bool) []*entity.TransactionDetail {
	var list []*entity.TransactionDetail
	for _, t := range r.entries {
		if filter(t) {
			list = append(list, &entity.TransactionDetail{InventoryTransaction: *t})
		}
	}
	return list
}
func (r *fakeTxRepo) List(limit, offset int) ([]*entity.TransactionDetail, error) {
	return r.details(func(*entity.InventoryTransaction) bool { return true }), nil
}
func (r *fakeTxRepo) ListByProduct(productID string, limit, offset int) ([]*entity.TransactionDetail, error) {
	return r.details(func(t *entity.InventoryTransaction) bool { return t.ProductID == productID }), nil
}
func (r *fakeTxRepo) ListByRecipient(recipientUserID string, limit, offset int) ([]*entity.TransactionDetail, error) {
	return r.details(func(t *entity.InventoryTransaction) bool { return t.RecipientUserID == recipientUserID }), nil
}
func (r *fakeTxRepo) ListByProductAsc(productID string) ([]*entity.TransactionDetail, error) {
	return r.ListByProduct(productID, 0, 0)
}
func (r *fakeTxRepo) ListPriced(productID string) ([]*entity.TransactionDetail, error) {
	return r.details(func(t *entity.InventoryTransaction) bool {
		if t.Kind == entity.TransactionOUT || t.UnitPrice == nil {
			return false
		}
		return productID == "" || t.ProductID == productID
	}), nil
}
func (r *fakeTxRepo) ListOut(productID, recipientUserID string) ([]*entity.TransactionDetail, error) {
	return r.details(func(t *entity.InventoryTransaction) bool {
		if t.Kind != entity.TransactionOUT {
			return false
		}
		if productID != "" && t.ProductID != productID {
			return false
		}
		return recipientUserID == "" || t.RecipientUserID == recipientUserID
	}), nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error              { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)  { return r.users[id], nil }
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) List() ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error                  { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error { return nil }
func (r *fakeUserRepo) Delete(id string) error                       { delete(r.users, id); return nil }

// fakeTxRunner ejecuta el callback directamente sobre los mismos fakes
// (sin semántica transaccional: los tests verifican la lógica, no el rollback).
type fakeTxRunner struct {
	txRepo      *fakeTxRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.txRepo, r.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID     = "00000000-0000-0000-0000-0000000000aa"
	recipientID = "00000000-0000-0000-0000-0000000000bb"
	productID   = "00000000-0000-0000-0000-0000000000cc"
)

func newLedgerFixture(initialBalance int64) (*inventory.LedgerUseCase, *fakeTxRepo) {
	products := newFakeProductRepo()
	products.Create(&entity.Product{
		ID:             productID,
		Name:           "Resma de papel",
		InitialBalance: initialBalance,
		CreatedBy:      adminID,
		CreatedAt:      time.Now(),
	})
	txRepo := &fakeTxRepo{}
	txRepo.Create(&entity.InventoryTransaction{
		ID:              "initial-1",
		ProductID:       productID,
		Kind:            entity.TransactionINITIAL,
		Quantity:        initialBalance,
		Remarks:         "Initial stock",
		CreatedBy:       adminID,
		TransactionDate: time.Now(),
	})
	users := newFakeUserRepo(
		&entity.User{ID: adminID, Name: "Admin", Email: "admin@pims.local", Role: entity.RoleAdmin},
		&entity.User{ID: recipientID, Name: "Receptor", Email: "receptor@pims.local", Role: entity.RoleUser},
	)
	runner := &fakeTxRunner{txRepo: txRepo, productRepo: products}
	return inventory.NewLedgerUseCase(runner, txRepo, products, users), txRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterIn
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterIn_AgregaEntradaYSubeElStock(t *testing.T) {
	uc, _ := newLedgerFixture(100)

	out, err := uc.RegisterIn(context.Background(), dto.CreateInRequest{
		ProductID: productID,
		Quantity:  50,
		UnitPrice: decimal.NewFromFloat(12.50),
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionIN, out.Kind)
	assert.Equal(t, int64(50), out.Quantity)

	stock, err := uc.CurrentStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), stock, "el stock derivado debe reflejar la entrada")
}

func TestRegisterIn_ProductoInexistente(t *testing.T) {
	uc, txRepo := newLedgerFixture(100)
	before := len(txRepo.entries)

	_, err := uc.RegisterIn(context.Background(), dto.CreateInRequest{
		ProductID: "no-existe",
		Quantity:  50,
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, txRepo.entries, before, "no debe escribirse nada en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterOut
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOut_DescuentaDelStock(t *testing.T) {
	// Escenario: inicial 100, entra 50, salen 30 → stock 120.
	uc, _ := newLedgerFixture(100)
	_, err := uc.RegisterIn(context.Background(), dto.CreateInRequest{
		ProductID: productID, Quantity: 50, UnitPrice: decimal.NewFromInt(10),
	}, adminID)
	require.NoError(t, err)

	out, err := uc.RegisterOut(context.Background(), dto.CreateOutRequest{
		ProductID:       productID,
		Quantity:        30,
		RecipientUserID: recipientID,
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionOUT, out.Kind)

	stock, err := uc.CurrentStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), stock)
}

func TestRegisterOut_StockInsuficienteNoTocaElLibro(t *testing.T) {
	// Stock 120; pedir 121 debe fallar y el libro queda intacto.
	uc, txRepo := newLedgerFixture(100)
	_, err := uc.RegisterIn(context.Background(), dto.CreateInRequest{
		ProductID: productID, Quantity: 50, UnitPrice: decimal.NewFromInt(10),
	}, adminID)
	require.NoError(t, err)
	_, err = uc.RegisterOut(context.Background(), dto.CreateOutRequest{
		ProductID: productID, Quantity: 30, RecipientUserID: recipientID,
	}, adminID)
	require.NoError(t, err)
	before := len(txRepo.entries)

	_, err = uc.RegisterOut(context.Background(), dto.CreateOutRequest{
		ProductID: productID, Quantity: 121, RecipientUserID: recipientID,
	}, adminID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 120")
	assert.Contains(t, err.Error(), "solicitado 121")
	assert.Len(t, txRepo.entries, before, "el rechazo no debe dejar rastro en el libro")

	stock, err := uc.CurrentStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), stock, "el stock no cambia tras un rechazo")
}

func TestRegisterOut_RetiroExactoDejaElStockEnCero(t *testing.T) {
	uc, _ := newLedgerFixture(40)

	_, err := uc.RegisterOut(context.Background(), dto.CreateOutRequest{
		ProductID: productID, Quantity: 40, RecipientUserID: recipientID,
	}, adminID)
	require.NoError(t, err)

	stock, err := uc.CurrentStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock)
}

func TestRegisterOut_ReceptorInexistente(t *testing.T) {
	uc, _ := newLedgerFixture(100)

	_, err := uc.RegisterOut(context.Background(), dto.CreateOutRequest{
		ProductID: productID, Quantity: 10, RecipientUserID: "no-existe",
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListByRecipient_SoloSalidasDelUsuario(t *testing.T) {
	uc, _ := newLedgerFixture(100)
	_, err := uc.RegisterOut(context.Background(), dto.CreateOutRequest{
		ProductID: productID, Quantity: 10, RecipientUserID: recipientID,
	}, adminID)
	require.NoError(t, err)

	list, err := uc.ListByRecipient(context.Background(), recipientID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransactionOUT, list[0].Kind)
	assert.Equal(t, recipientID, list[0].RecipientUserID)
}
