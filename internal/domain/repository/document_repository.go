package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// DocumentFilter filtros de listado de documentos.
type DocumentFilter struct {
	Type        entity.DocumentType
	Status      entity.DocumentStatus
	WarehouseID string // en transferencias coincide con origen o destino
	Limit       int
	Offset      int
}

// PendingCountFilter filtros para contar documentos pendientes por tipo.
type PendingCountFilter struct {
	Statuses    []entity.DocumentStatus
	WarehouseID string
}

// DocumentRepository puerto de persistencia de documentos y sus líneas.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate bloquea la fila del documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	// UpdateStatus persiste estado y fechas si doc.Version coincide con la almacenada;
	// incrementa Version. Versión obsoleta → *domain.ConcurrencyConflictError.
	UpdateStatus(ctx context.Context, doc *entity.Document) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	CountByType(ctx context.Context, filter PendingCountFilter) (map[entity.DocumentType]int64, error)
}
