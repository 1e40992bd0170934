package model

import "time"

// ProductCode is a single-use redemption token.  A code is created
// already bound to one specific, previously-available account.  Used is
// false until redemption; once true the code is terminal and can never
// be redeemed again.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique short human-typeable code (e.g. "NET-4K7Q1234").
//  ProductID – product the code belongs to.
//  AccountID – the single account the code unlocks.
//  Used      – whether the code has been redeemed.
//  UsedAt    – redemption timestamp, nil while unused.
//  CreatedAt – timestamp when the row was created.
type ProductCode struct {
	ID        uint64     `json:"id"`         // product_codes.id
	Code      string     `json:"code"`       // product_codes.code
	ProductID uint64     `json:"product_id"` // product_codes.product_id
	AccountID uint64     `json:"account_id"` // product_codes.account_id
	Used      bool       `json:"used"`       // product_codes.used
	UsedAt    *time.Time `json:"used_at"`    // product_codes.used_at (nullable)
	CreatedAt time.Time  `json:"created_at"` // product_codes.created_at
}
