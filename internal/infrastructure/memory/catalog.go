package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
)

// ProductRepo productos en memoria. El SKU es único.
type ProductRepo struct{ base }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *state) {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.products {
			if id != p.ID && other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	return r.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.Cost = cost
		st.products[productID] = p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	search := strings.ToLower(f.Search)
	r.read(func(st *state) {
		for _, p := range st.products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.SKU != "" && p.SKU != f.SKU {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) {
				continue
			}
			p := p
			list = append(list, &p)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, f.Limit, f.Offset), nil
}

func (r *ProductRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(ids))
	r.read(func(st *state) {
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				list = append(list, &p)
			}
		}
	})
	return list, nil
}

// CategoryRepo categorías en memoria. El nombre es único.
type CategoryRepo struct{ base }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.write(func(st *state) error {
		for _, other := range st.categories {
			if other.ID == c.ID || strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.read(func(st *state) {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.read(func(st *state) {
		for _, c := range st.categories {
			if strings.EqualFold(c.Name, name) {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	r.read(func(st *state) {
		for _, c := range st.categories {
			c := c
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// SupplierRepo proveedores en memoria. El nombre es único.
type SupplierRepo struct{ base }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.write(func(st *state) error {
		for _, other := range st.suppliers {
			if other.ID == s.ID || strings.EqualFold(other.Name, s.Name) {
				return domain.ErrDuplicate
			}
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.read(func(st *state) {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.read(func(st *state) {
		for _, s := range st.suppliers {
			if strings.EqualFold(s.Name, name) {
				s := s
				out = &s
				return
			}
		}
	})
	return out, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	r.read(func(st *state) {
		for _, s := range st.suppliers {
			s := s
			list = append(list, &s)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// WarehouseRepo bodegas y ubicaciones en memoria.
type WarehouseRepo struct{ base }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.write(func(st *state) error {
		for _, other := range st.warehouses {
			if other.ID == w.ID || strings.EqualFold(other.Name, w.Name) {
				return domain.ErrDuplicate
			}
		}
		st.warehouses[w.ID] = copyWarehouse(*w)
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.read(func(st *state) {
		if w, ok := st.warehouses[id]; ok {
			w = copyWarehouse(w)
			out = &w
		}
	})
	return out, nil
}

func (r *WarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.read(func(st *state) {
		for _, w := range st.warehouses {
			if strings.EqualFold(w.Name, name) {
				w = copyWarehouse(w)
				out = &w
				return
			}
		}
	})
	return out, nil
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	r.read(func(st *state) {
		for _, w := range st.warehouses {
			w = copyWarehouse(w)
			list = append(list, &w)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *WarehouseRepo) AddLocation(_ context.Context, loc *entity.Location) error {
	return r.write(func(st *state) error {
		w, ok := st.warehouses[loc.WarehouseID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, l := range w.Locations {
			if l.ID == loc.ID || strings.EqualFold(l.Name, loc.Name) {
				return domain.ErrDuplicate
			}
		}
		w.Locations = append(append([]entity.Location(nil), w.Locations...), *loc)
		st.warehouses[w.ID] = w
		return nil
	})
}

// UserRepo usuarios en memoria. El email es único.
type UserRepo struct{ base }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.write(func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.read(func(st *state) {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []entity.User
	r.read(func(st *state) {
		out = make([]entity.User, 0, len(st.users))
		for _, u := range st.users {
			out = append(out, u)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	res := make([]*entity.User, 0, len(out))
	for _, u := range page(out, limit, offset) {
		u := u
		res = append(res, &u)
	}
	return res, nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string, updatedAt time.Time) error {
	return r.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.Role = role
		u.UpdatedAt = updatedAt
		st.users[id] = u
		return nil
	})
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string, updatedAt time.Time) error {
	return r.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.PasswordHash = passwordHash
		u.UpdatedAt = updatedAt
		st.users[id] = u
		return nil
	})
}
