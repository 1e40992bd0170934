package model

import "time"

// Account status values.  An account starts as available, becomes
// reserved when a redemption code is minted against it and becomes used
// when that code is redeemed.  No transition ever moves backward.
const (
	AccountAvailable = "available"
	AccountReserved  = "reserved"
	AccountUsed      = "used"
)

// DefaultLoginVia is applied when an account is created without an
// explicit login method.
const DefaultLoginVia = "Email"

// Account is a credential pair belonging to a product.  Passwords are
// stored in clear text on purpose: the whole point of the service is to
// hand the credentials to the redeeming user verbatim.
//
// Fields:
//  ID        – primary key identifier.
//  ProductID – owning product.
//  Email     – login identifier handed to the redeemer.
//  Password  – login secret handed to the redeemer.
//  LoginVia  – how the credentials are used (e.g. "Email", "Google").
//  Status    – available | reserved | used.
//  Notes     – free-form admin notes.
//  CreatedAt – timestamp when the row was created.
type Account struct {
	ID        uint64    `json:"id"`         // accounts.id
	ProductID uint64    `json:"product_id"` // accounts.product_id
	Email     string    `json:"email"`      // accounts.email
	Password  string    `json:"password"`   // accounts.password
	LoginVia  string    `json:"login_via"`  // accounts.login_via
	Status    string    `json:"status"`     // accounts.status
	Notes     string    `json:"notes"`      // accounts.notes
	CreatedAt time.Time `json:"created_at"` // accounts.created_at
}
