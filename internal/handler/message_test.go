package handler

import (
	"net/http"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/code-redemption/internal/repository"
)

func TestPostMessageDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO messages").
		WithArgs("anonymous", "User", "help me", "user").
		WillReturnResult(sqlmock.NewResult(3, 1))

	h := NewMessageHandler(repository.NewMessageRepo(db))
	c, rec := newTestContext(http.MethodPost, "/api/messages", `{"message":"help me"}`)
	if err := h.Post(c); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["messageId"] != float64(3) {
		t.Fatalf("unexpected body: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostMessageEmpty(t *testing.T) {
	h := NewMessageHandler(nil)
	c, rec := newTestContext(http.MethodPost, "/api/messages", `{"message":"   "}`)
	if err := h.Post(c); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUnreadCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(
		sqlmock.NewRows([]string{"count"}).AddRow(4))

	h := NewMessageHandler(repository.NewMessageRepo(db))
	c, rec := newTestContext(http.MethodGet, "/api/messages/unread/count", "")
	if err := h.UnreadCount(c); err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if body := decodeBody(t, rec); body["count"] != float64(4) {
		t.Fatalf("unexpected body: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE messages SET status = 'read'").WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	h := NewMessageHandler(repository.NewMessageRepo(db))
	c, rec := newTestContext(http.MethodPut, "/api/messages/8/read", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	if err := h.MarkRead(c); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
