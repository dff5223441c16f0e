package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/itadmin/internal/repo"
	"github.com/lib/pq"
)

var userCols = []string{"id", "email", "name", "role", "department", "created_at", "updated_at"}

func TestUserHandler_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("jane.doe@company.com", "Jane Doe", "technician", "IT").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "jane.doe@company.com", "Jane Doe", "technician", "IT", now, now))

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	body := `{"email":"jane.doe@company.com","name":"Jane Doe","role":"technician","department":"IT"}`
	rr := httptest.NewRecorder()
	h.CreateUser(rr, httptest.NewRequest("POST", "/users", strings.NewReader(body)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateUser status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_CreateUser_BadRequest(t *testing.T) {
	h := &UserHandler{}
	for _, body := range []string{`{}`, `{"email":"not-an-email"}`, `{"email":"a@b.co","role":"root"}`} {
		rr := httptest.NewRecorder()
		h.CreateUser(rr, httptest.NewRequest("POST", "/users", strings.NewReader(body)))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", body, rr.Code)
		}
	}
}

func TestUserHandler_CreateUser_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	rr := httptest.NewRecorder()
	h.CreateUser(rr, httptest.NewRequest("POST", "/users", strings.NewReader(`{"email":"admin@company.com"}`)))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "duplicate key") {
		t.Errorf("driver detail leaked: %s", rr.Body.String())
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY name ASC, id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "a@company.com", "Alice", "admin", nil, now, now).
			AddRow(2, "b@company.com", "Bob", "user", nil, now, now))

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	rr := httptest.NewRecorder()
	h.ListUsers(rr, httptest.NewRequest("GET", "/users", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"totalCount":2`) {
		t.Errorf("body = %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_ExportUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	ts := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "admin@company.com", "System Admin", "admin", nil, ts, ts).
			AddRow(2, "x@company.com", nil, "user", nil, ts, ts))

	h := &UserHandler{Repo: repo.NewUserRepo(db), Now: func() time.Time { return ts }}
	rr := httptest.NewRecorder()
	h.ExportUsers(rr, httptest.NewRequest("GET", "/users/export", nil))

	want := "ID,Name,Email,Role,Created At,Updated At\n" +
		"1,System Admin,admin@company.com,admin,2024-05-01,2024-05-01\n" +
		"2,,x@company.com,user,2024-05-01,2024-05-01\n"
	if rr.Body.String() != want {
		t.Errorf("csv body:\n%s\nwant:\n%s", rr.Body.String(), want)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="users_export_2024-05-01.csv"` {
		t.Errorf("content disposition = %q", cd)
	}
}
