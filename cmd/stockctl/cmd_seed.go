package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockmaster-api/internal/app"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

var seedWithStock bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga usuarios, catálogo y una bodega de ejemplo (idempotente)",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedWithStock, "with-stock", false, "asienta una recepción de apertura para los productos nuevos")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if cfg.Inventory.StorageDriver == config.StorageMemory {
		log.Warn().Msg("seed sobre almacenamiento en memoria: los datos se pierden al terminar")
	}
	st, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := app.NewServices(cfg, st, app.Options{}, log)
	res, err := seedData(ctx, st, svc, seedWithStock)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "usuarios: %d, categorías: %d, proveedores: %d, bodegas: %d, ubicaciones: %d, productos: %d\n",
		res.Users, res.Categories, res.Suppliers, res.Warehouses, res.Locations, res.Products)
	if res.ReceiptID != "" {
		fmt.Fprintf(out, "recepción de apertura: %s\n", res.ReceiptID)
	}
	for _, u := range seedUsers {
		fmt.Fprintf(out, "  %-26s %-11s %s\n", u.Email, u.Password, u.Role)
	}
	return nil
}

type seedUser struct {
	Email    string
	Password string
	Role     string
}

type seedProduct struct {
	SKU      string
	Name     string
	Category string
	Unit     string
	Reorder  int64
	Opening  int64
	UnitCost int64
}

var (
	seedUsers = []seedUser{
		{Email: "admin@stockmaster.com", Password: "admin123", Role: entity.RoleAdmin},
		{Email: "manager@stockmaster.com", Password: "manager123", Role: entity.RoleManager},
		{Email: "staff@stockmaster.com", Password: "staff123", Role: entity.RoleStaff},
	}
	seedCategories = []string{"Electronics", "Furniture", "Raw Materials", "Tools", "Office Supplies"}
	seedSupplier   = "ABC Suppliers"
	seedWarehouse  = "Main Warehouse"
	seedLocations  = []string{"Rack A", "Rack B"}
	seedProducts   = []seedProduct{
		{SKU: "ELEC-001", Name: "Laptop 14\"", Category: "Electronics", Unit: "unit", Reorder: 5, Opening: 20, UnitCost: 850},
		{SKU: "FURN-001", Name: "Office Chair", Category: "Furniture", Unit: "unit", Reorder: 10, Opening: 40, UnitCost: 120},
		{SKU: "RAW-001", Name: "Steel Sheet 2mm", Category: "Raw Materials", Unit: "kg", Reorder: 200, Opening: 1000, UnitCost: 3},
		{SKU: "TOOL-001", Name: "Cordless Drill", Category: "Tools", Unit: "unit", Reorder: 3, Opening: 12, UnitCost: 95},
		{SKU: "OFF-001", Name: "A4 Paper Ream", Category: "Office Supplies", Unit: "box", Reorder: 50, Opening: 300, UnitCost: 4},
	}
)

type seedResult struct {
	Users      int
	Categories int
	Suppliers  int
	Warehouses int
	Locations  int
	Products   int
	ReceiptID  string
}

// seedData crea solo lo que falta; correr dos veces no duplica nada.
func seedData(ctx context.Context, st *app.Storage, svc *app.Services, withStock bool) (*seedResult, error) {
	res := &seedResult{}

	for _, u := range seedUsers {
		_, err := svc.Auth.RegisterUser(ctx, dto.RegisterRequest{Email: u.Email, Password: u.Password, Role: u.Role})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
		case err != nil:
			return nil, fmt.Errorf("usuario %s: %w", u.Email, err)
		default:
			res.Users++
		}
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, name := range seedCategories {
		id, created, err := ensureCategory(ctx, st, svc, name)
		if err != nil {
			return nil, err
		}
		categoryIDs[name] = id
		if created {
			res.Categories++
		}
	}

	supplier, err := st.Suppliers.GetByName(ctx, seedSupplier)
	if err != nil {
		return nil, err
	}
	supplierID := ""
	if supplier == nil {
		s, err := svc.Catalog.CreateSupplier(ctx, dto.CreateSupplierRequest{Name: seedSupplier})
		if err != nil {
			return nil, fmt.Errorf("proveedor: %w", err)
		}
		supplierID = s.ID
		res.Suppliers++
	} else {
		supplierID = supplier.ID
	}

	warehouse, err := st.Warehouses.GetByName(ctx, seedWarehouse)
	if err != nil {
		return nil, err
	}
	warehouseID := ""
	if warehouse == nil {
		w, err := svc.Warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: seedWarehouse})
		if err != nil {
			return nil, fmt.Errorf("bodega: %w", err)
		}
		warehouseID = w.ID
		res.Warehouses++
	} else {
		warehouseID = warehouse.ID
	}
	var firstLocation string
	for _, name := range seedLocations {
		loc, err := svc.Warehouses.AddLocation(ctx, warehouseID, dto.CreateLocationRequest{Name: name})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
		case err != nil:
			return nil, fmt.Errorf("ubicación %s: %w", name, err)
		default:
			res.Locations++
			if firstLocation == "" {
				firstLocation = loc.ID
			}
		}
	}

	var opening []inventory.LineInput
	for _, p := range seedProducts {
		existing, err := st.Products.GetBySKU(ctx, p.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		created, err := svc.Products.Create(ctx, dto.CreateProductRequest{
			Name:          p.Name,
			SKU:           p.SKU,
			CategoryID:    categoryIDs[p.Category],
			UnitOfMeasure: p.Unit,
			InitialStock:  p.Opening,
			ReorderPoint:  p.Reorder,
		})
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", p.SKU, err)
		}
		res.Products++
		cost := decimal.NewFromInt(p.UnitCost)
		opening = append(opening, inventory.LineInput{
			ProductID:  created.ID,
			Quantity:   p.Opening,
			LocationID: firstLocation,
			UnitCost:   &cost,
		})
	}

	if withStock && len(opening) > 0 {
		id, err := postOpeningReceipt(ctx, st, svc, supplierID, warehouseID, opening)
		if err != nil {
			return nil, err
		}
		res.ReceiptID = id
	}
	return res, nil
}

func ensureCategory(ctx context.Context, st *app.Storage, svc *app.Services, name string) (string, bool, error) {
	existing, err := st.Categories.GetByName(ctx, name)
	if err != nil {
		return "", false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}
	c, err := svc.Catalog.CreateCategory(ctx, dto.CreateCategoryRequest{Name: name})
	if err != nil {
		return "", false, fmt.Errorf("categoría %s: %w", name, err)
	}
	return c.ID, true, nil
}

// postOpeningReceipt crea y valida una recepción a nombre del admin sembrado.
func postOpeningReceipt(ctx context.Context, st *app.Storage, svc *app.Services, supplierID, warehouseID string, lines []inventory.LineInput) (string, error) {
	admin, err := st.Users.GetByEmail(ctx, seedUsers[0].Email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", fmt.Errorf("usuario %s no encontrado", seedUsers[0].Email)
	}
	sess := inventory.Session{UserID: admin.ID, Role: admin.Role}
	doc, err := svc.Documents.Create(ctx, sess, inventory.DocumentInput{
		Type:        entity.DocumentTypeReceipt,
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		Lines:       lines,
	})
	if err != nil {
		return "", fmt.Errorf("recepción de apertura: %w", err)
	}
	if _, err := svc.Documents.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID); err != nil {
		return "", fmt.Errorf("validar recepción de apertura: %w", err)
	}
	return doc.ID, nil
}
