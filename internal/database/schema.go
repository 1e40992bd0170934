package database

// schema.go owns table creation, first-run seeding and the destructive
// reset used by tests.  There are no migrations and no schema
// versioning: every statement is an idempotent CREATE TABLE IF NOT
// EXISTS.  Creation and seeding errors are logged but not fatal so the
// server keeps serving with whatever subset of tables succeeded.

import (
	"context"
	"database/sql"
	"log"
)

// createStatements lists the DDL for the four tables in dependency
// order.  product_codes intentionally carries no foreign keys: deleting
// an account does not cascade to its codes, so a code row may dangle
// until its product is deleted.  The redeem join treats such codes as
// invalid.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		product_code VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		logo VARCHAR(128) NOT NULL DEFAULT 'fas fa-box',
		stock INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT UNSIGNED NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		login_via VARCHAR(64) NOT NULL DEFAULT 'Email',
		status VARCHAR(16) NOT NULL DEFAULT 'available',
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_accounts_product_status (product_id, status)
	)`,
	`CREATE TABLE IF NOT EXISTS product_codes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(32) NOT NULL UNIQUE,
		product_id BIGINT UNSIGNED NOT NULL,
		account_id BIGINT UNSIGNED NOT NULL,
		used TINYINT(1) NOT NULL DEFAULT 0,
		used_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_codes_product (product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(64),
		username VARCHAR(128),
		message TEXT NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		replied_to BIGINT UNSIGNED NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'unread',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// dropStatements removes the tables in reverse dependency order.
var dropStatements = []string{
	`DROP TABLE IF EXISTS messages`,
	`DROP TABLE IF EXISTS product_codes`,
	`DROP TABLE IF EXISTS accounts`,
	`DROP TABLE IF EXISTS products`,
}

// EnsureSchema creates each table if it does not already exist.  A
// failed statement is logged and the remaining statements still run.
func EnsureSchema(ctx context.Context, db *sql.DB) {
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("schema: create table failed: %v", err)
		}
	}
}

// Reset drops and recreates all four tables unconditionally.  It exists
// for tests and the reset endpoint; everything stored is lost.
func Reset(ctx context.Context, db *sql.DB) error {
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// sampleProduct pairs a seed product with its seed accounts.
type sampleProduct struct {
	code, name, description, logo string
	stock                         int
	accounts                      [][3]string // email, password, notes
}

var sampleProducts = []sampleProduct{
	{"NETFLIX001", "Netflix Premium", "Akun Netflix Premium 4K UHD, 4 screen", "fas fa-film", 10, [][3]string{
		{"netflix1@example.com", "netflix123", "Sample account 1"},
		{"netflix2@example.com", "netflix456", "Sample account 2"},
		{"netflix3@example.com", "netflix789", "Sample account 3"},
	}},
	{"SPOTIFY001", "Spotify Premium", "Akun Spotify Premium Family", "fab fa-spotify", 8, [][3]string{
		{"spotify1@example.com", "spotify123", "Sample account"},
		{"spotify2@example.com", "spotify456", "Sample account"},
	}},
	{"YOUTUBE001", "YouTube Premium", "YouTube Premium Family", "fab fa-youtube", 5, [][3]string{
		{"youtube1@example.com", "youtube123", "Sample account"},
	}},
	{"DISCORD001", "Discord Nitro", "Discord Nitro 1 Tahun", "fab fa-discord", 3, nil},
	{"STEAM001", "Steam Wallet", "Steam Wallet Code $10", "fab fa-steam", 15, nil},
}

// SeedIfEmpty inserts the sample catalog on first run, detected by an
// empty products table.  Individual insert failures are logged and the
// remaining rows still go in.
func SeedIfEmpty(ctx context.Context, db *sql.DB) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		log.Printf("schema: seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	log.Printf("schema: empty database, inserting sample data")
	for _, sp := range sampleProducts {
		res, err := db.ExecContext(ctx,
			`INSERT INTO products (product_code, name, description, logo, stock) VALUES (?, ?, ?, ?, ?)`,
			sp.code, sp.name, sp.description, sp.logo, sp.stock)
		if err != nil {
			log.Printf("schema: seed product %s failed: %v", sp.code, err)
			continue
		}
		productID, err := res.LastInsertId()
		if err != nil {
			log.Printf("schema: seed product %s id lookup failed: %v", sp.code, err)
			continue
		}
		for _, acc := range sp.accounts {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO accounts (product_id, email, password, login_via, notes) VALUES (?, ?, ?, 'Email', ?)`,
				productID, acc[0], acc[1], acc[2]); err != nil {
				log.Printf("schema: seed account %s failed: %v", acc[0], err)
			}
		}
	}
	log.Printf("schema: sample data initialization completed")
}
