package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/code-redemption/internal/queue"
	"github.com/iliyamo/code-redemption/internal/repository"
)

type fakePublisher struct {
	events chan queue.CodeRedeemedEvent
}

func (f *fakePublisher) PublishCodeRedeemed(_ context.Context, ev queue.CodeRedeemedEvent) error {
	f.events <- ev
	return nil
}

func redeemRows() *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "product_id", "account_id", "email", "password", "login_via", "name"}).
		AddRow(11, 1, 2, "a@x.com", "pw", "Email", "Netflix Premium")
}

func TestRedeemSuccessPublishesEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("NET-AB121234").WillReturnRows(redeemRows())
	mock.ExpectExec("UPDATE product_codes SET used = 1").WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET status = 'used'").WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET stock = stock - 1").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pub := &fakePublisher{events: make(chan queue.CodeRedeemedEvent, 1)}
	h := NewRedeemHandler(repository.NewCodeRepo(db), pub)

	c, rec := newTestContext(http.MethodPost, "/api/redeem", `{"code":"NET-AB121234"}`)
	if err := h.Redeem(c); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	account, ok := body["account"].(map[string]any)
	if !ok {
		t.Fatalf("missing account in %v", body)
	}
	if account["email"] != "a@x.com" || account["password"] != "pw" || account["product"] != "Netflix Premium" {
		t.Fatalf("unexpected account payload: %v", account)
	}

	select {
	case ev := <-pub.events:
		if ev.Code != "NET-AB121234" || ev.ProductName != "Netflix Premium" || ev.AccountID != 2 {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Email != "a@x.com" {
			t.Fatalf("event email = %q", ev.Email)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedeemInvalidCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	h := NewRedeemHandler(repository.NewCodeRepo(db), nil)
	c, rec := newTestContext(http.MethodPost, "/api/redeem", `{"code":"NOPE"}`)
	if err := h.Redeem(c); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid or used code" {
		t.Fatalf("unexpected error: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedeemEmptyCode(t *testing.T) {
	h := NewRedeemHandler(nil, nil)
	c, rec := newTestContext(http.MethodPost, "/api/redeem", `{"code":"  "}`)
	if err := h.Redeem(c); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
