package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// ChangeNotifier recibe aviso cuando cambia un dato del que dependen los KPIs
// (punto de reorden, categoría).
type ChangeNotifier interface {
	InventoryChanged(ctx context.Context)
}

// ProductUseCase casos de uso CRUD para productos. Cost y stock se manejan vía documentos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	notifier     ChangeNotifier
}

// NewProductUseCase construye el caso de uso. notifier puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, notifier ChangeNotifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, notifier: notifier}
}

// Create crea un nuevo producto. Cost inicia en 0; InitialStock es informativo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	if in.SKU == "" {
		return nil, domain.NewValidationError("sku_code", "requerido")
	}
	if in.InitialStock < 0 || in.ReorderPoint < 0 {
		return nil, domain.NewValidationError("initial_stock", "las cantidades no pueden ser negativas")
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if in.UnitOfMeasure == "" {
		in.UnitOfMeasure = "unit"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		SKU:           in.SKU,
		CategoryID:    in.CategoryID,
		UnitOfMeasure: in.UnitOfMeasure,
		InitialStock:  in.InitialStock,
		ReorderPoint:  in.ReorderPoint,
		Cost:          decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.notify(ctx)
	return toProductResponse(product, category), nil
}

// GetByID obtiene un producto con su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// Update actualiza un producto. No permite modificar Cost ni stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "requerido")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, *in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	category, err := uc.category(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.InitialStock != nil {
		product.InitialStock = *in.InitialStock
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.NewValidationError("reorder_point", "no puede ser negativo")
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.notify(ctx)
	return toProductResponse(product, category), nil
}

// List lista productos con filtros por categoría, SKU y búsqueda parcial.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		CategoryID: in.CategoryID,
		SKU:        in.SKU,
		Search:     in.Search,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, byID[p.CategoryID]))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *ProductUseCase) notify(ctx context.Context) {
	if uc.notifier != nil {
		uc.notifier.InventoryChanged(ctx)
	}
}

func (uc *ProductUseCase) category(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, domain.NewValidationError("category_id", "requerido")
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewUnknownReferenceError("category_id", id)
	}
	return c, nil
}

func toProductResponse(p *entity.Product, c *entity.Category) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		Category:      toCategoryResponse(c),
		UnitOfMeasure: p.UnitOfMeasure,
		InitialStock:  p.InitialStock,
		ReorderPoint:  p.ReorderPoint,
		Cost:          p.Cost,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
