package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/code-redemption/internal/model"
)

// ProductRepo encapsulates all database queries related to products.
// The stock column is denormalized: every mutation that adds, removes
// or redeems an account adjusts it, always inside the same transaction
// as the triggering write.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *ProductRepo) DB() *sql.DB { return r.db }

// ListWithAvailability returns all products, newest first, with the
// available_accounts aggregate computed inline from the accounts table.
func (r *ProductRepo) ListWithAvailability(ctx context.Context) ([]*model.Product, error) {
	const q = `SELECT p.id, p.product_code, p.name, COALESCE(p.description, ''), p.logo, p.stock, p.created_at,
	                  (SELECT COUNT(*) FROM accounts a WHERE a.product_id = p.id AND a.status = 'available')
	           FROM products p
	           ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Product, 0)
	for rows.Next() {
		p := new(model.Product)
		if err := rows.Scan(&p.ID, &p.ProductCode, &p.Name, &p.Description, &p.Logo,
			&p.Stock, &p.CreatedAt, &p.AvailableAccounts); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a product by its ID.  It returns ErrProductNotFound
// when no row exists.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = `SELECT id, product_code, name, COALESCE(description, ''), logo, stock, created_at
	           FROM products WHERE id = ?`
	p := new(model.Product)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.ProductCode, &p.Name, &p.Description, &p.Logo, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new product.  On success the product's ID field is
// populated with the auto-generated value.  A duplicate product_code
// violates the unique constraint and surfaces as a plain storage error.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products (product_code, name, description, logo, stock) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.ProductCode, p.Name, p.Description, p.Logo, p.Stock)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update overwrites the mutable fields of a product.  There are no
// partial-patch semantics: callers send every field.  Updating a
// nonexistent product affects zero rows and is not an error.
func (r *ProductRepo) Update(ctx context.Context, id uint64, name, description, logo string, stock int) error {
	const q = `UPDATE products SET name = ?, description = ?, logo = ?, stock = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, name, description, logo, stock, id)
	return err
}

// Delete removes a product together with its dependent codes and
// accounts.  The cascade runs inside one transaction so a failure on
// any step leaves the catalog untouched.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM product_codes WHERE product_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM accounts WHERE product_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = ErrProductNotFound
		return err
	}
	return nil
}

// AdjustStockTx shifts a product's stock counter by delta within an
// existing transaction.  The caller must commit or roll back.
func (r *ProductRepo) AdjustStockTx(ctx context.Context, tx *sql.Tx, id uint64, delta int) error {
	const q = `UPDATE products SET stock = stock + ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, delta, id)
	return err
}
