// Package queue defines message payloads exchanged over the message broker.
package queue

// CodeRedeemedEvent is published when a redemption code is successfully
// exchanged for credentials.  It carries enough information for
// downstream consumers to log or notify without querying the primary
// database.  The account password is deliberately omitted: the secret
// goes to the redeeming user only, never onto the broker.
type CodeRedeemedEvent struct {
	Code        string `json:"code"`
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	AccountID   uint64 `json:"account_id"`
	Email       string `json:"email"`
	LoginVia    string `json:"login_via"`
	RedeemedAt  string `json:"redeemed_at"`
}
