package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// DocumentLineForPDF línea con el nombre del producto resuelto.
type DocumentLineForPDF struct {
	entity.DocumentLine
	SKU           string
	ProductName   string
	UnitOfMeasure string
}

// DocumentForPDF datos ya resueltos para imprimir un comprobante.
type DocumentForPDF struct {
	Document      *entity.Document
	Lines         []DocumentLineForPDF
	SupplierName  string
	WarehouseName string
	FromName      string
	ToName        string
}

// DocumentPDFGenerator puerto de generación del PDF (implementado en infrastructure/pdf).
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc DocumentForPDF) ([]byte, error)
}

// DocumentPDFUseCase arma el comprobante imprimible de un documento.
type DocumentPDFUseCase struct {
	docRepo       repository.DocumentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	generator     DocumentPDFGenerator
}

// NewDocumentPDFUseCase construye el caso de uso.
func NewDocumentPDFUseCase(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	generator DocumentPDFGenerator,
) *DocumentPDFUseCase {
	return &DocumentPDFUseCase{
		docRepo:       docRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		generator:     generator,
	}
}

// Generate devuelve los bytes del PDF del documento.
func (uc *DocumentPDFUseCase) Generate(ctx context.Context, id string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	data := DocumentForPDF{Document: doc}
	ids := make([]string, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := uc.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, l := range doc.Lines {
		line := DocumentLineForPDF{DocumentLine: l}
		if p := byID[l.ProductID]; p != nil {
			line.SKU, line.ProductName, line.UnitOfMeasure = p.SKU, p.Name, p.UnitOfMeasure
		}
		data.Lines = append(data.Lines, line)
	}

	if data.WarehouseName, err = uc.warehouseName(ctx, doc.WarehouseID); err != nil {
		return nil, err
	}
	if data.FromName, err = uc.warehouseName(ctx, doc.FromWarehouseID); err != nil {
		return nil, err
	}
	if data.ToName, err = uc.warehouseName(ctx, doc.ToWarehouseID); err != nil {
		return nil, err
	}
	if doc.SupplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, doc.SupplierID)
		if err != nil {
			return nil, err
		}
		if s != nil {
			data.SupplierName = s.Name
		}
	}
	return uc.generator.GenerateDocumentPDF(ctx, data)
}

func (uc *DocumentPDFUseCase) warehouseName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil || w == nil {
		return "", err
	}
	return w.Name, nil
}
