package store

import (
	"context"
	"fmt"
	"sync"

	"rkeller/pennyflow/internal/models"
)

// MemoryStore is an in-memory Store for tests. It mirrors the SQLite
// implementation's contract, including the unique canonical id per user.
type MemoryStore struct {
	mu           sync.Mutex
	accounts     map[string]models.Account
	batches      map[string]models.ImportBatch
	transactions map[string]models.Transaction
	categories   map[string]models.Category

	// FailInsertFor makes InsertTransaction fail for the named canonical
	// ids, to exercise partial-failure paths.
	FailInsertFor map[string]error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[string]models.Account),
		batches:      make(map[string]models.ImportBatch),
		transactions: make(map[string]models.Transaction),
		categories:   make(map[string]models.Category),
	}
}

func (m *MemoryStore) CreateAccount(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = *account
	return nil
}

func (m *MemoryStore) GetAccount(_ context.Context, id string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (m *MemoryStore) ListAccounts(_ context.Context, userID string) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var accounts []models.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (m *MemoryStore) DeactivateAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	account.IsActive = false
	m.accounts[id] = account
	return nil
}

func (m *MemoryStore) CreateImportBatch(_ context.Context, batch *models.ImportBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches[batch.ID] = *batch
	return nil
}

func (m *MemoryStore) FinalizeImportBatch(_ context.Context, batch *models.ImportBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.batches[batch.ID]; !ok {
		return ErrNotFound
	}
	m.batches[batch.ID] = *batch
	return nil
}

func (m *MemoryStore) GetImportBatch(_ context.Context, id string) (*models.ImportBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch, ok := m.batches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &batch, nil
}

func (m *MemoryStore) ListImportBatches(_ context.Context, userID string) ([]models.ImportBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var batches []models.ImportBatch
	for _, b := range m.batches {
		if b.UserID == userID {
			batches = append(batches, b)
		}
	}
	return batches, nil
}

func (m *MemoryStore) GetTransactionByCanonicalID(_ context.Context, userID, canonicalID string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transactions {
		if t.UserID == userID && t.CanonicalID == canonicalID {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) InsertTransaction(_ context.Context, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailInsertFor[txn.CanonicalID]; ok {
		return err
	}
	for _, t := range m.transactions {
		if t.UserID == txn.UserID && t.CanonicalID == txn.CanonicalID {
			return fmt.Errorf("canonical id already exists")
		}
	}
	m.transactions[txn.ID] = *txn
	return nil
}

func (m *MemoryStore) ListTransactionsByImport(_ context.Context, importID string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var txns []models.Transaction
	for _, t := range m.transactions {
		if t.ImportID == importID {
			txns = append(txns, t)
		}
	}
	return txns, nil
}

func (m *MemoryStore) CreateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = *category
	return nil
}

func (m *MemoryStore) ListCategories(_ context.Context, userID string) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var categories []models.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (m *MemoryStore) Close() error { return nil }
