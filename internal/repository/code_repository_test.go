package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestRedeemSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("NET-AB121234").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "product_id", "account_id", "email", "password", "login_via", "name"}).
			AddRow(11, 1, 2, "a@x.com", "pw", "Email", "Netflix Premium"))
	mock.ExpectExec("UPDATE product_codes SET used = 1").WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET status = 'used'").WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET stock = stock - 1").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewCodeRepo(db)
	red, err := repo.Redeem(context.Background(), "NET-AB121234")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if red.Email != "a@x.com" || red.Password != "pw" || red.Product != "Netflix Premium" {
		t.Fatalf("unexpected redemption: %+v", red)
	}
	if red.ProductID != 1 || red.AccountID != 2 {
		t.Fatalf("identifiers not populated: %+v", red)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedeemUnknownCodeRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	repo := NewCodeRepo(db)
	if _, err := repo.Redeem(context.Background(), "NOPE"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("err = %v, want ErrCodeNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedeemWriteFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	boom := errors.New("disk on fire")
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("NET-AB121234").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "product_id", "account_id", "email", "password", "login_via", "name"}).
			AddRow(11, 1, 2, "a@x.com", "pw", "Email", "Netflix Premium"))
	mock.ExpectExec("UPDATE product_codes SET used = 1").WithArgs(11).WillReturnError(boom)
	mock.ExpectRollback()

	repo := NewCodeRepo(db)
	if _, err := repo.Redeem(context.Background(), "NET-AB121234"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped write failure", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
