package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const defaultLockTimeout = 5 * time.Second

// DocumentConfig parámetros del motor de documentos.
type DocumentConfig struct {
	// LockTimeout espera máxima por el bloqueo de un documento antes de ConcurrencyConflictError.
	LockTimeout time.Duration
	Notifier    ChangeNotifier
}

// DocumentUseCase motor de flujo de documentos (Receipt, Delivery, Transfer, Adjustment).
// Las transiciones que asientan en el ledger corren en una sola transacción:
// o se escriben todas las entradas y el cambio de estado, o ninguna.
type DocumentUseCase struct {
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	notifier      ChangeNotifier
	locks         *keyLocker
	lockTimeout   time.Duration
	log           zerolog.Logger
	now           func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	cfg DocumentConfig,
	log zerolog.Logger,
) *DocumentUseCase {
	timeout := cfg.LockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	return &DocumentUseCase{
		txRunner:      txRunner,
		docRepo:       docRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		notifier:      cfg.Notifier,
		locks:         newKeyLocker(),
		lockTimeout:   timeout,
		log:           log.With().Str("component", "documents").Logger(),
		now:           time.Now,
	}
}

// DocumentInput datos para crear un documento de cualquier variante.
type DocumentInput struct {
	Type            entity.DocumentType
	Status          entity.DocumentStatus // opcional; Draft por defecto
	SupplierID      string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	Reason          string
	Lines           []LineInput
}

// LineInput línea de entrada. Quantity aplica a Receipt/Delivery/Transfer; CountedQuantity a Adjustment.
type LineInput struct {
	ProductID       string
	Quantity        int64
	CountedQuantity int64
	LocationID      string
	FromLocationID  string
	ToLocationID    string
	UnitCost        *decimal.Decimal
}

// posting entrada a asentar junto con el costo de la línea que la origina.
type posting struct {
	draft    entity.LedgerDraft
	unitCost *decimal.Decimal
}

// Create valida la entrada y persiste el documento en Draft (o el estado pendiente pedido).
// Los ajustes se asientan al crearse y quedan Done.
func (uc *DocumentUseCase) Create(ctx context.Context, sess Session, in DocumentInput) (*dto.DocumentResponse, error) {
	if sess.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	now := uc.now()
	doc := &entity.Document{
		ID:              uuid.New().String(),
		Type:            in.Type,
		Status:          in.Status,
		SupplierID:      in.SupplierID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Reason:          in.Reason,
		CreatedBy:       sess.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}
	doc.Lines = make([]entity.DocumentLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			CountedQuantity: l.CountedQuantity,
			LocationID:      l.LocationID,
			FromLocationID:  l.FromLocationID,
			ToLocationID:    l.ToLocationID,
			UnitCost:        l.UnitCost,
		})
	}

	if doc.Type == entity.DocumentTypeAdjustment {
		return uc.createAdjustment(ctx, sess, doc)
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.StockRepository,
		docRepo repository.DocumentRepository,
		_ repository.ProductRepository,
	) error {
		return docRepo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("document_id", doc.ID).Str("type", string(doc.Type)).
		Str("status", string(doc.Status)).Str("user_id", sess.UserID).Msg("documento creado")
	uc.notify(ctx)
	return toDocumentResponse(doc, nil), nil
}

// createAdjustment fija cada clave al conteo físico: delta = contado − actual, sin chequeo de faltantes.
func (uc *DocumentUseCase) createAdjustment(ctx context.Context, sess Session, doc *entity.Document) (*dto.DocumentResponse, error) {
	now := doc.CreatedAt
	var entries []*entity.LedgerEntry

	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
	) error {
		entries = entries[:0]
		keys := make([]entity.StockKey, 0, len(doc.Lines))
		for _, l := range doc.Lines {
			keys = append(keys, entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.WarehouseID, LocationID: l.LocationID})
		}
		if _, err := lockKeys(ctx, stockRepo, keys); err != nil {
			return err
		}
		costs, err := productCosts(ctx, productRepo, doc)
		if err != nil {
			return err
		}
		for i := range doc.Lines {
			l := &doc.Lines[i]
			key := keys[i]
			level, err := stockRepo.GetForUpdate(ctx, key)
			if err != nil {
				return err
			}
			l.SystemQuantity = level.Quantity
			e, err := AppendEntry(ctx, ledgerRepo, stockRepo, entity.LedgerDraft{
				Key:            key,
				ChangeQuantity: inventory.AdjustmentDelta(level.Quantity, l.CountedQuantity),
				DocumentType:   doc.Type,
				DocumentID:     doc.ID,
				UnitCost:       costs[l.ProductID],
				CreatedBy:      sess.UserID,
			}, false, now)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		doc.Status = entity.StatusDone
		doc.DoneAt = &now
		return docRepo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.afterCommit(ctx, doc, sess, len(entries), "ajuste aplicado")
	return toDocumentResponse(doc, entries), nil
}

// Validate transición Draft/Waiting/Ready → Done para recepciones y entregas.
func (uc *DocumentUseCase) Validate(ctx context.Context, sess Session, docType entity.DocumentType, id string) (*dto.DocumentResponse, error) {
	if docType != entity.DocumentTypeReceipt && docType != entity.DocumentTypeDelivery {
		return nil, domain.NewValidationError("document_type", "solo recepciones y entregas se validan")
	}
	return uc.commit(ctx, sess, docType, id, "validar")
}

// Complete transición Draft/Waiting/Ready → Done para transferencias internas.
func (uc *DocumentUseCase) Complete(ctx context.Context, sess Session, id string) (*dto.DocumentResponse, error) {
	return uc.commit(ctx, sess, entity.DocumentTypeTransfer, id, "completar")
}

func (uc *DocumentUseCase) commit(ctx context.Context, sess Session, docType entity.DocumentType, id, action string) (*dto.DocumentResponse, error) {
	if sess.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	unlock, err := uc.locks.Lock(ctx, id, uc.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := uc.now()
	var (
		doc     *entity.Document
		entries []*entity.LedgerEntry
	)
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
	) error {
		entries = entries[:0]
		var err error
		doc, err = lockDocument(ctx, docRepo, docType, id)
		if err != nil {
			return err
		}
		if doc.Status.IsTerminal() {
			return &domain.InvalidStateTransitionError{DocumentID: id, From: string(doc.Status), Action: action}
		}

		postings, reqs := planPostings(doc, sess.UserID)
		keys := make([]entity.StockKey, 0, len(postings))
		for _, p := range postings {
			keys = append(keys, p.draft.Key)
		}
		available, err := lockKeys(ctx, stockRepo, keys)
		if err != nil {
			return err
		}
		if err := inventory.CheckAvailability(reqs, available); err != nil {
			return err
		}

		costs, err := productCosts(ctx, productRepo, doc)
		if err != nil {
			return err
		}
		for _, p := range postings {
			d := p.draft
			d.UnitCost = costs[d.Key.ProductID]
			if p.unitCost != nil {
				d.UnitCost = *p.unitCost
			}
			e, err := AppendEntry(ctx, ledgerRepo, stockRepo, d, false, now)
			if err != nil {
				return err
			}
			entries = append(entries, e)

			if p.unitCost != nil {
				prev := e.NewStockLevel - e.ChangeQuantity
				newCost := inventory.WeightedCost(prev, costs[d.Key.ProductID], e.ChangeQuantity, *p.unitCost)
				if err := productRepo.UpdateCost(ctx, d.Key.ProductID, newCost); err != nil {
					return err
				}
				costs[d.Key.ProductID] = newCost
			}
		}

		doc.Status = entity.StatusDone
		doc.DoneAt = &now
		doc.UpdatedAt = now
		return docRepo.UpdateStatus(ctx, doc)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("document_id", id).Str("action", action).Msg("transición rechazada")
		return nil, err
	}
	uc.afterCommit(ctx, doc, sess, len(entries), "documento completado")
	return toDocumentResponse(doc, entries), nil
}

// Cancel transición Draft/Waiting/Ready → Canceled, sin efecto en el ledger.
func (uc *DocumentUseCase) Cancel(ctx context.Context, sess Session, docType entity.DocumentType, id string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, sess, docType, id, entity.StatusCanceled, "cancelar")
}

// ChangeStatus avanza un documento pendiente (Draft → Waiting → Ready).
func (uc *DocumentUseCase) ChangeStatus(ctx context.Context, sess Session, docType entity.DocumentType, id string, to entity.DocumentStatus) (*dto.DocumentResponse, error) {
	if to != entity.StatusWaiting && to != entity.StatusReady {
		return nil, domain.NewValidationError("status", "solo se admite Waiting o Ready; use validate, complete o cancel")
	}
	return uc.transition(ctx, sess, docType, id, to, "pasar a "+string(to))
}

func (uc *DocumentUseCase) transition(ctx context.Context, sess Session, docType entity.DocumentType, id string, to entity.DocumentStatus, action string) (*dto.DocumentResponse, error) {
	if sess.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	unlock, err := uc.locks.Lock(ctx, id, uc.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := uc.now()
	var doc *entity.Document
	err = uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.StockRepository,
		docRepo repository.DocumentRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		doc, err = lockDocument(ctx, docRepo, docType, id)
		if err != nil {
			return err
		}
		allowed := !doc.Status.IsTerminal()
		if to != entity.StatusCanceled {
			allowed = doc.Status.CanAdvanceTo(to)
		}
		if !allowed {
			return &domain.InvalidStateTransitionError{DocumentID: id, From: string(doc.Status), Action: action}
		}
		doc.Status = to
		doc.UpdatedAt = now
		if to == entity.StatusCanceled {
			doc.CanceledAt = &now
		}
		return docRepo.UpdateStatus(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("document_id", id).Str("status", string(to)).Str("user_id", sess.UserID).Msg("estado actualizado")
	uc.notify(ctx)
	return toDocumentResponse(doc, nil), nil
}

// Get obtiene un documento de la variante indicada.
func (uc *DocumentUseCase) Get(ctx context.Context, docType entity.DocumentType, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || (docType != "" && doc.Type != docType) {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc, nil), nil
}

// List lista documentos filtrando por tipo, estado y bodega.
func (uc *DocumentUseCase) List(ctx context.Context, filter repository.DocumentFilter) (*dto.DocumentListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	filter.Limit, filter.Offset = page.Limit, page.Offset

	docs, err := uc.docRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toDocumentResponse(d, nil))
	}
	return &dto.DocumentListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *DocumentUseCase) afterCommit(ctx context.Context, doc *entity.Document, sess Session, n int, msg string) {
	uc.log.Info().Str("document_id", doc.ID).Str("type", string(doc.Type)).
		Int("ledger_entries", n).Str("user_id", sess.UserID).Msg(msg)
	uc.notify(ctx)
}

// notify avisa de cualquier escritura confirmada: los conteos de pendientes
// dependen del estado de los documentos aunque no haya asientos.
func (uc *DocumentUseCase) notify(ctx context.Context) {
	if uc.notifier != nil {
		uc.notifier.InventoryChanged(ctx)
	}
}

// validateInput reglas de forma; no consulta colaboradores.
func validateInput(in *DocumentInput) error {
	if !in.Type.Valid() {
		return domain.NewValidationError("document_type", "tipo de documento desconocido")
	}
	if in.Type == entity.DocumentTypeAdjustment {
		in.Status = entity.StatusDraft
	}
	switch in.Status {
	case "":
		in.Status = entity.StatusDraft
	case entity.StatusDraft, entity.StatusWaiting, entity.StatusReady:
	default:
		return domain.NewValidationError("status", "el estado inicial debe ser Draft, Waiting o Ready")
	}
	if len(in.Lines) == 0 {
		return domain.NewValidationError("items", "se requiere al menos una línea")
	}

	switch in.Type {
	case entity.DocumentTypeReceipt:
		if in.SupplierID == "" {
			return domain.NewValidationError("supplier_id", "requerido")
		}
		if in.WarehouseID == "" {
			return domain.NewValidationError("warehouse_id", "requerido")
		}
	case entity.DocumentTypeDelivery, entity.DocumentTypeAdjustment:
		if in.WarehouseID == "" {
			return domain.NewValidationError("warehouse_id", "requerido")
		}
	case entity.DocumentTypeTransfer:
		if in.FromWarehouseID == "" || in.ToWarehouseID == "" {
			return domain.NewValidationError("from_warehouse_id", "origen y destino son requeridos")
		}
		if in.FromWarehouseID == in.ToWarehouseID {
			return domain.NewValidationError("to_warehouse_id", "origen y destino deben ser distintos")
		}
	}

	for i, l := range in.Lines {
		if l.ProductID == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "requerido")
		}
		if in.Type == entity.DocumentTypeAdjustment {
			if l.CountedQuantity < 0 {
				return domain.NewValidationError(fmt.Sprintf("items[%d].counted_quantity", i), "no puede ser negativa")
			}
			continue
		}
		if l.Quantity <= 0 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que 0")
		}
		if l.UnitCost != nil && l.UnitCost.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("items[%d].unit_cost", i), "no puede ser negativo")
		}
	}
	return nil
}

// checkReferences verifica que productos, bodegas, ubicaciones y proveedor existan.
func (uc *DocumentUseCase) checkReferences(ctx context.Context, in DocumentInput) error {
	warehouses := make(map[string]*entity.Warehouse)
	loadWarehouse := func(field, id string) (*entity.Warehouse, error) {
		if w, ok := warehouses[id]; ok {
			return w, nil
		}
		w, err := uc.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, domain.NewUnknownReferenceError(field, id)
		}
		warehouses[id] = w
		return w, nil
	}

	var wh, from, to *entity.Warehouse
	var err error
	if in.Type == entity.DocumentTypeTransfer {
		if from, err = loadWarehouse("from_warehouse_id", in.FromWarehouseID); err != nil {
			return err
		}
		if to, err = loadWarehouse("to_warehouse_id", in.ToWarehouseID); err != nil {
			return err
		}
	} else if wh, err = loadWarehouse("warehouse_id", in.WarehouseID); err != nil {
		return err
	}

	if in.Type == entity.DocumentTypeReceipt {
		s, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewUnknownReferenceError("supplier_id", in.SupplierID)
		}
	}

	ids := make([]string, 0, len(in.Lines))
	seen := make(map[string]bool, len(in.Lines))
	for i, l := range in.Lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
		if wh != nil && l.LocationID != "" && !wh.HasLocation(l.LocationID) {
			return domain.NewUnknownReferenceError(fmt.Sprintf("items[%d].location_id", i), l.LocationID)
		}
		if from != nil && l.FromLocationID != "" && !from.HasLocation(l.FromLocationID) {
			return domain.NewUnknownReferenceError(fmt.Sprintf("items[%d].from_location_id", i), l.FromLocationID)
		}
		if to != nil && l.ToLocationID != "" && !to.HasLocation(l.ToLocationID) {
			return domain.NewUnknownReferenceError(fmt.Sprintf("items[%d].to_location_id", i), l.ToLocationID)
		}
	}
	products, err := uc.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[string]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for i, l := range in.Lines {
		if !found[l.ProductID] {
			return domain.NewUnknownReferenceError(fmt.Sprintf("items[%d].product_id", i), l.ProductID)
		}
	}
	return nil
}

// planPostings deltas por línea y demanda agregada por clave (solo decrementos).
func planPostings(doc *entity.Document, userID string) ([]posting, []inventory.Requirement) {
	var (
		postings []posting
		reqs     []inventory.Requirement
	)
	reqIdx := make(map[entity.StockKey]int)
	need := func(k entity.StockKey, q int64) {
		if i, ok := reqIdx[k]; ok {
			reqs[i].Quantity += q
			return
		}
		reqIdx[k] = len(reqs)
		reqs = append(reqs, inventory.Requirement{Key: k, Quantity: q})
	}
	add := func(k entity.StockKey, delta int64, unitCost *decimal.Decimal) {
		postings = append(postings, posting{
			draft: entity.LedgerDraft{
				Key: k, ChangeQuantity: delta,
				DocumentType: doc.Type, DocumentID: doc.ID, CreatedBy: userID,
			},
			unitCost: unitCost,
		})
	}

	for _, l := range doc.Lines {
		switch doc.Type {
		case entity.DocumentTypeReceipt:
			add(entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.WarehouseID, LocationID: l.LocationID}, l.Quantity, l.UnitCost)
		case entity.DocumentTypeDelivery:
			k := entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.WarehouseID, LocationID: l.LocationID}
			need(k, l.Quantity)
			add(k, -l.Quantity, nil)
		case entity.DocumentTypeTransfer:
			src := entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.FromWarehouseID, LocationID: l.FromLocationID}
			dst := entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.ToWarehouseID, LocationID: l.ToLocationID}
			need(src, l.Quantity)
			add(src, -l.Quantity, nil)
			add(dst, l.Quantity, nil)
		}
	}
	return postings, reqs
}

// lockKeys bloquea las claves en orden determinista y devuelve sus cantidades actuales.
func lockKeys(ctx context.Context, stockRepo repository.StockRepository, keys []entity.StockKey) (map[entity.StockKey]int64, error) {
	uniq := make([]entity.StockKey, 0, len(keys))
	levels := make(map[entity.StockKey]int64, len(keys))
	for _, k := range keys {
		if _, ok := levels[k]; ok {
			continue
		}
		levels[k] = 0
		uniq = append(uniq, k)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Less(uniq[j]) })
	for _, k := range uniq {
		lvl, err := stockRepo.GetForUpdate(ctx, k)
		if err != nil {
			return nil, err
		}
		levels[k] = lvl.Quantity
	}
	return levels, nil
}

func lockDocument(ctx context.Context, docRepo repository.DocumentRepository, docType entity.DocumentType, id string) (*entity.Document, error) {
	doc, err := docRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Type != docType {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func productCosts(ctx context.Context, productRepo repository.ProductRepository, doc *entity.Document) (map[string]decimal.Decimal, error) {
	ids := make([]string, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	costs := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		costs[p.ID] = p.Cost
	}
	return costs, nil
}

func toDocumentResponse(d *entity.Document, entries []*entity.LedgerEntry) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	out := &dto.DocumentResponse{
		ID:              d.ID,
		Type:            string(d.Type),
		Status:          string(d.Status),
		SupplierID:      d.SupplierID,
		WarehouseID:     d.WarehouseID,
		FromWarehouseID: d.FromWarehouseID,
		ToWarehouseID:   d.ToWarehouseID,
		Reason:          d.Reason,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		DoneAt:          d.DoneAt,
		CanceledAt:      d.CanceledAt,
		Items:           make([]dto.DocumentLineResponse, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		item := dto.DocumentLineResponse{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			LocationID:     l.LocationID,
			FromLocationID: l.FromLocationID,
			ToLocationID:   l.ToLocationID,
			UnitCost:       l.UnitCost,
		}
		if d.Type == entity.DocumentTypeAdjustment {
			counted, system := l.CountedQuantity, l.SystemQuantity
			item.CountedQuantity = &counted
			item.SystemQuantity = &system
		}
		out.Items = append(out.Items, item)
	}
	if len(entries) > 0 {
		out.LedgerEntries = toLedgerResponses(entries)
	}
	return out
}
