package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxFunc recibe repositorios atados a una transacción.
type TxFunc func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
) error

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Run garantiza atomicidad para el motor de inventario: si fn devuelve error no queda ninguna escritura.
// RunReadOnly ve una única instantánea durante toda fn; lecturas sucesivas no observan commits concurrentes.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
	RunReadOnly(ctx context.Context, fn TxFunc) error
}

// ChangeNotifier recibe aviso tras cada commit que cambió documentos, ledger o
// stock (ej. invalidar la caché de KPIs).
type ChangeNotifier interface {
	InventoryChanged(ctx context.Context)
}

// Session identidad explícita del actor que ejecuta una operación.
type Session struct {
	UserID string
	Role   string
}
