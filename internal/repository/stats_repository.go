package repository

import (
	"context"
	"database/sql"
)

// Stats are the aggregate counters shown on the admin dashboard.  All
// five are independent COUNT queries; nothing is cached or mutated.
type Stats struct {
	Products          int `json:"products"`
	TotalAccounts     int `json:"totalAccounts"`
	AvailableAccounts int `json:"availableAccounts"`
	TotalCodes        int `json:"totalCodes"`
	UsedCodes         int `json:"usedCodes"`
}

// HealthCounts are the smaller table counts reported by the health
// endpoint alongside connectivity status.
type HealthCounts struct {
	Products int `json:"products"`
	Accounts int `json:"accounts"`
	Codes    int `json:"codes"`
}

// StatsRepo serves the read-only aggregate queries.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo with the provided DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Overview runs the five dashboard counts.
func (r *StatsRepo) Overview(ctx context.Context) (*Stats, error) {
	s := new(Stats)
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM products`, &s.Products},
		{`SELECT COUNT(*) FROM accounts`, &s.TotalAccounts},
		{`SELECT COUNT(*) FROM accounts WHERE status = 'available'`, &s.AvailableAccounts},
		{`SELECT COUNT(*) FROM product_codes`, &s.TotalCodes},
		{`SELECT COUNT(*) FROM product_codes WHERE used = 1`, &s.UsedCodes},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Ping verifies database connectivity with a trivial query.
func (r *StatsRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

// Health returns the table counts reported by the health endpoint in a
// single round trip.
func (r *StatsRepo) Health(ctx context.Context) (*HealthCounts, error) {
	const q = `SELECT
	             (SELECT COUNT(*) FROM products),
	             (SELECT COUNT(*) FROM accounts),
	             (SELECT COUNT(*) FROM product_codes)`
	h := new(HealthCounts)
	if err := r.db.QueryRowContext(ctx, q).Scan(&h.Products, &h.Accounts, &h.Codes); err != nil {
		return nil, err
	}
	return h, nil
}
