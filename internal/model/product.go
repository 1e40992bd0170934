package model

import "time"

// Product represents a sellable digital good.  Each product owns a pool
// of credential accounts; the Stock column is a denormalized count of
// the accounts that have not yet been consumed and is adjusted by every
// mutation that adds, removes or redeems an account.
//
// Fields:
//  ID                – primary key identifier.
//  ProductCode       – unique human-readable code (e.g. "NETFLIX001").
//  Name              – display name of the product.
//  Description       – free-form description.
//  Logo              – icon identifier shown by the front end.
//  Stock             – cached count of non-used accounts.
//  AvailableAccounts – computed count of accounts with status 'available';
//                      populated only by listing queries, never stored.
//  CreatedAt         – timestamp when the row was created.
type Product struct {
	ID                uint64    `json:"id"`                 // products.id
	ProductCode       string    `json:"product_code"`       // products.product_code
	Name              string    `json:"name"`               // products.name
	Description       string    `json:"description"`        // products.description
	Logo              string    `json:"logo"`               // products.logo
	Stock             int       `json:"stock"`              // products.stock
	AvailableAccounts int       `json:"available_accounts"` // computed aggregate
	CreatedAt         time.Time `json:"created_at"`         // products.created_at
}

// DefaultLogo is applied when a product is created without an icon.
const DefaultLogo = "fas fa-box"
