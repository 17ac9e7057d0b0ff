// Package memory implementa todos los puertos de repositorio en memoria.
// Se usa en desarrollo (INVENTORY_STORAGE=memory) y en los tests del motor.
//
// Las transacciones trabajan sobre una copia del estado y la publican al
// hacer commit; un error descarta la copia completa.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido. txMu serializa escritores; mu protege el puntero al estado publicado.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *state
}

type state struct {
	products   map[string]entity.Product
	categories map[string]entity.Category
	warehouses map[string]entity.Warehouse
	suppliers  map[string]entity.Supplier
	users      map[string]entity.User
	documents  map[string]entity.Document
	docOrder   []string
	stock      map[entity.StockKey]entity.StockLevel
	ledger     []*entity.LedgerEntry
	seq        int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: &state{
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
		warehouses: make(map[string]entity.Warehouse),
		suppliers:  make(map[string]entity.Supplier),
		users:      make(map[string]entity.User),
		documents:  make(map[string]entity.Document),
		stock:      make(map[entity.StockKey]entity.StockLevel),
	}}
}

func (st *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(st.products)),
		categories: make(map[string]entity.Category, len(st.categories)),
		warehouses: make(map[string]entity.Warehouse, len(st.warehouses)),
		suppliers:  make(map[string]entity.Supplier, len(st.suppliers)),
		users:      make(map[string]entity.User, len(st.users)),
		documents:  make(map[string]entity.Document, len(st.documents)),
		docOrder:   append([]string(nil), st.docOrder...),
		stock:      make(map[entity.StockKey]entity.StockLevel, len(st.stock)),
		ledger:     append([]*entity.LedgerEntry(nil), st.ledger...),
		seq:        st.seq,
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.categories {
		c.categories[k] = v
	}
	for k, v := range st.warehouses {
		c.warehouses[k] = copyWarehouse(v)
	}
	for k, v := range st.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.documents {
		c.documents[k] = copyDocument(v)
	}
	for k, v := range st.stock {
		c.stock[k] = v
	}
	return c
}

// Run ejecuta fn sobre una copia privada del estado; solo se publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	b := base{s: s, tx: work}
	if err := fn(&LedgerRepo{b}, &StockRepo{b}, &DocumentRepo{b}, &ProductRepo{b}); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

// RunReadOnly ejecuta fn sobre una copia del estado publicado que nunca se publica.
// No espera a las transacciones de escritura en curso.
func (s *Store) RunReadOnly(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snap := s.state.clone()
	s.mu.RUnlock()

	b := base{s: s, tx: snap}
	return fn(&LedgerRepo{b}, &StockRepo{b}, &DocumentRepo{b}, &ProductRepo{b})
}

// base resuelve el estado sobre el que opera un repositorio: el de la tx o el publicado.
type base struct {
	s  *Store
	tx *state
}

func (b base) read(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	fn(b.s.state)
}

// write fuera de transacción equivale a un autocommit: fn debe validar antes de mutar.
func (b base) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.txMu.Lock()
	defer b.s.txMu.Unlock()
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.state)
}

func copyWarehouse(w entity.Warehouse) entity.Warehouse {
	w.Locations = append([]entity.Location(nil), w.Locations...)
	return w
}

func copyDocument(d entity.Document) entity.Document {
	d.Lines = append([]entity.DocumentLine(nil), d.Lines...)
	return d
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// Repositorios sobre el estado publicado (fuera de transacción).

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{base{s: s}} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{base{s: s}} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{base{s: s}} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{base{s: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{base{s: s}} }

// Documents repositorio de documentos.
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{base{s: s}} }

// Stock índice de stock.
func (s *Store) Stock() *StockRepo { return &StockRepo{base{s: s}} }

// Ledger repositorio del ledger.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{base{s: s}} }
