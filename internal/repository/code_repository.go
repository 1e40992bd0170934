package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/code-redemption/internal/model"
)

// CodeRepo encapsulates all database queries related to redemption
// codes, including the one operation in the system that must be
// atomic: redeeming a code.
type CodeRepo struct {
	db *sql.DB
}

// NewCodeRepo constructs a CodeRepo with the provided DB handle.
func NewCodeRepo(db *sql.DB) *CodeRepo { return &CodeRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *CodeRepo) DB() *sql.DB { return r.db }

// ExistsTx reports whether a code string is already taken, within an
// existing transaction.  The generator's collision retry loop calls
// this after every candidate.
func (r *CodeRepo) ExistsTx(ctx context.Context, tx *sql.Tx, code string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM product_codes WHERE code = ?`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a new unused code bound to one account, within an
// existing transaction.  The generated ID is populated on the record.
func (r *CodeRepo) CreateTx(ctx context.Context, tx *sql.Tx, pc *model.ProductCode) error {
	const q = `INSERT INTO product_codes (code, product_id, account_id) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, pc.Code, pc.ProductID, pc.AccountID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	pc.ID = uint64(id)
	return nil
}

// CodeDetail is one row of the admin code listing: the code joined with
// its account's email and status and the product name.  Accounts and
// products are left-joined because deleting an account leaves its codes
// dangling.
type CodeDetail struct {
	ID            uint64     `json:"id"`
	Code          string     `json:"code"`
	ProductID     uint64     `json:"product_id"`
	AccountID     uint64     `json:"account_id"`
	Used          bool       `json:"used"`
	UsedAt        *time.Time `json:"used_at"`
	CreatedAt     time.Time  `json:"created_at"`
	Email         *string    `json:"email"`
	AccountStatus *string    `json:"account_status"`
	ProductName   *string    `json:"product_name"`
}

// ListByProduct returns all codes of a product, newest first, with the
// joined account and product columns used by the admin page.
func (r *CodeRepo) ListByProduct(ctx context.Context, productID uint64) ([]*CodeDetail, error) {
	const q = `SELECT pc.id, pc.code, pc.product_id, pc.account_id, pc.used, pc.used_at, pc.created_at,
	                  a.email, a.status, p.name
	           FROM product_codes pc
	           LEFT JOIN accounts a ON a.id = pc.account_id
	           LEFT JOIN products p ON p.id = pc.product_id
	           WHERE pc.product_id = ?
	           ORDER BY pc.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*CodeDetail, 0)
	for rows.Next() {
		d := new(CodeDetail)
		var usedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.Code, &d.ProductID, &d.AccountID, &d.Used, &usedAt, &d.CreatedAt,
			&d.Email, &d.AccountStatus, &d.ProductName); err != nil {
			return nil, err
		}
		if usedAt.Valid {
			t := usedAt.Time
			d.UsedAt = &t
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Redemption carries everything the redeem response needs: the
// credentials of the unlocked account and the product name.  This is
// the only response in the system that exposes a secret.
type Redemption struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	LoginVia string `json:"login_via"`
	Product  string `json:"product"`

	// Identifiers for event publishing, never serialized to clients.
	ProductID uint64 `json:"-"`
	AccountID uint64 `json:"-"`
}

// Redeem exchanges an unused code for its account's credentials.  The
// lookup and all three writes (mark the code used, mark the account
// used, decrement the product's stock) run in one transaction: either
// every write commits or none applies.  ErrCodeNotFound covers an
// unknown code, an already-used code, and a code whose account or
// product has been deleted.
func (r *CodeRepo) Redeem(ctx context.Context, code string) (red *Redemption, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const q = `SELECT pc.id, pc.product_id, pc.account_id, a.email, a.password, a.login_via, p.name
	           FROM product_codes pc
	           JOIN products p ON p.id = pc.product_id
	           JOIN accounts a ON a.id = pc.account_id
	           WHERE pc.code = ? AND pc.used = 0
	           FOR UPDATE`
	var (
		codeID uint64
		out    Redemption
	)
	err = tx.QueryRowContext(ctx, q, code).Scan(
		&codeID, &out.ProductID, &out.AccountID, &out.Email, &out.Password, &out.LoginVia, &out.Product)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrCodeNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE product_codes SET used = 1, used_at = CURRENT_TIMESTAMP WHERE id = ?`, codeID); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE accounts SET status = 'used' WHERE id = ?`, out.AccountID); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE products SET stock = stock - 1 WHERE id = ?`, out.ProductID); err != nil {
		return nil, err
	}
	return &out, nil
}
