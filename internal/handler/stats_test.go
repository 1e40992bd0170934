package handler

import (
	"errors"
	"net/http"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/code-redemption/internal/repository"
)

func TestStatsOverview(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	row := func(n int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(row(5))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(row(40))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(row(25))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(row(30))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(row(12))

	h := NewStatsHandler(repository.NewStatsRepo(db))
	c, rec := newTestContext(http.MethodGet, "/api/stats", "")
	if err := h.Overview(c); err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["products"] != float64(5) || body["totalAccounts"] != float64(40) ||
		body["availableAccounts"] != float64(25) || body["totalCodes"] != float64(30) ||
		body["usedCodes"] != float64(12) {
		t.Fatalf("unexpected stats: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestHealthCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT 1").WillReturnRows(
		sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"products", "accounts", "codes"}).AddRow(5, 40, 30))

	h := NewHealthHandler(repository.NewStatsRepo(db))
	c, rec := newTestContext(http.MethodGet, "/api/health", "")
	if err := h.Check(c); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" || body["database"] != "connected" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection refused"))

	h := NewHealthHandler(repository.NewStatsRepo(db))
	c, rec := newTestContext(http.MethodGet, "/api/health", "")
	if err := h.Check(c); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := decodeBody(t, rec); body["status"] != "unhealthy" {
		t.Fatalf("unexpected health body: %v", body)
	}
}
