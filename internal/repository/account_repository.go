package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/code-redemption/internal/model"
)

// AccountRepo encapsulates all database queries related to credential
// accounts.  Mutations that touch the owning product's stock counter
// run the account write and the counter adjustment in one transaction.
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo constructs an AccountRepo with the provided DB handle.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

// accountCols is the scan order shared by every account query.
const accountCols = `id, product_id, email, password, login_via, status, COALESCE(notes, ''), created_at`

func scanAccount(row interface{ Scan(...any) error }) (*model.Account, error) {
	a := new(model.Account)
	err := row.Scan(&a.ID, &a.ProductID, &a.Email, &a.Password, &a.LoginVia, &a.Status, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByProduct returns the accounts of a product ordered by status and
// then by insertion order ascending, which keeps listings stable while
// accounts move through their lifecycle.  When onlyAvailable is true
// the result is restricted to accounts that can still be reserved.
func (r *AccountRepo) ListByProduct(ctx context.Context, productID uint64, onlyAvailable bool) ([]*model.Account, error) {
	q := `SELECT ` + accountCols + ` FROM accounts WHERE product_id = ?`
	if onlyAvailable {
		q += ` AND status = 'available'`
	}
	q += ` ORDER BY status, id`
	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAvailableForProduct fetches an account by ID, verifying that it
// belongs to the given product and is still available.  Any mismatch
// returns ErrAccountNotFound.
func (r *AccountRepo) GetAvailableForProduct(ctx context.Context, id, productID uint64) (*model.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE id = ? AND product_id = ? AND status = 'available'`
	a, err := scanAccount(r.db.QueryRowContext(ctx, q, id, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAvailableTx returns up to limit available accounts of a product,
// oldest first, within an existing transaction.  Batch code generation
// uses it to pick the accounts to reserve.
func (r *AccountRepo) ListAvailableTx(ctx context.Context, tx *sql.Tx, productID uint64, limit int) ([]*model.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts
	           WHERE product_id = ? AND status = 'available'
	           ORDER BY id LIMIT ?`
	rows, err := tx.QueryContext(ctx, q, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Account, 0, limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkStatusTx updates a single account's lifecycle status within an
// existing transaction.
func (r *AccountRepo) MarkStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE accounts SET status = ? WHERE id = ?`, status, id)
	return err
}

// Create inserts one account and increments the owning product's stock
// by one, both inside a single transaction.  ErrProductNotFound is
// returned when the product does not exist.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) (err error) {
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
	if err = checkProductTx(ctx, tx, a.ProductID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO accounts (product_id, email, password, login_via, notes) VALUES (?, ?, ?, ?, ?)`,
		a.ProductID, a.Email, a.Password, a.LoginVia, a.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.Status = model.AccountAvailable
	if _, err = tx.ExecContext(ctx, `UPDATE products SET stock = stock + 1 WHERE id = ?`, a.ProductID); err != nil {
		return err
	}
	return nil
}

// BulkCreate inserts a batch of accounts for one product.  Entries
// missing an email or password are counted as failed and skipped; the
// stock counter is incremented by the successfully-added count.  The
// whole batch shares a transaction so the counter can never drift from
// the inserts.
func (r *AccountRepo) BulkCreate(ctx context.Context, productID uint64, accounts []model.Account) (added, failed int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if err = checkProductTx(ctx, tx, productID); err != nil {
		return 0, 0, err
	}
	for _, acc := range accounts {
		if acc.Email == "" || acc.Password == "" {
			failed++
			continue
		}
		loginVia := acc.LoginVia
		if loginVia == "" {
			loginVia = model.DefaultLoginVia
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (product_id, email, password, login_via, notes) VALUES (?, ?, ?, ?, ?)`,
			productID, acc.Email, acc.Password, loginVia, acc.Notes); err != nil {
			return 0, 0, err
		}
		added++
	}
	if added > 0 {
		if _, err = tx.ExecContext(ctx, `UPDATE products SET stock = stock + ? WHERE id = ?`, added, productID); err != nil {
			return 0, 0, err
		}
	}
	return added, failed, nil
}

// ImportFromText parses newline-separated "email|password|loginVia"
// records and inserts the valid ones, incrementing stock by the
// imported count in the same transaction.  It returns how many lines
// were imported and how many were malformed.
func (r *AccountRepo) ImportFromText(ctx context.Context, productID uint64, text string) (imported, failed int, err error) {
	parsed, failed := ParseImportText(text)
	added, _, err := r.BulkCreate(ctx, productID, parsed)
	if err != nil {
		return 0, 0, err
	}
	return added, failed, nil
}

// ParseImportText splits bulk import text into account records.  Lines
// are pipe-delimited: email|password|loginVia, with loginVia optional.
// Blank lines are ignored; lines with fewer than two fields count as
// failed.
func ParseImportText(text string) (accounts []model.Account, failed int) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			failed++
			continue
		}
		acc := model.Account{Email: parts[0], Password: parts[1], LoginVia: model.DefaultLoginVia}
		if len(parts) >= 3 && parts[2] != "" {
			acc.LoginVia = parts[2]
		}
		accounts = append(accounts, acc)
	}
	return accounts, failed
}

// Delete removes one account, first decrementing the owning product's
// stock.  Deleting a nonexistent account is a no-op success: the
// decrement is skipped and the delete affects zero rows.
func (r *AccountRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	var productID uint64
	err = tx.QueryRowContext(ctx, `SELECT product_id FROM accounts WHERE id = ?`, id).Scan(&productID)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil
	}
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE products SET stock = stock - 1 WHERE id = ?`, productID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// checkProductTx verifies a product row exists inside a transaction and
// maps the miss to ErrProductNotFound.
func checkProductTx(ctx context.Context, tx *sql.Tx, productID uint64) error {
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, productID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
