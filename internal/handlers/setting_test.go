package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/itadmin/internal/repo"
)

var settingCols = []string{"key", "value", "type", "created_at", "updated_at"}

func TestSettingHandler_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO settings`).
		WithArgs("company_name", "Acme", "string").
		WillReturnRows(sqlmock.NewRows(settingCols).AddRow("company_name", "Acme", "string", now, now))

	h := &SettingHandler{Repo: repo.NewSettingRepo(db)}
	rr := httptest.NewRecorder()
	h.UpsertSetting(rr, httptest.NewRequest("POST", "/settings", strings.NewReader(`{"key":"company_name","value":"Acme"}`)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSettingHandler_Upsert_Validation(t *testing.T) {
	h := &SettingHandler{}
	rr := httptest.NewRecorder()
	h.UpsertSetting(rr, httptest.NewRequest("POST", "/settings", strings.NewReader(`{"key":"k"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestSettingHandler_GetSetting_EncodedKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM settings WHERE key = \$1`).
		WithArgs("mail/from").
		WillReturnRows(sqlmock.NewRows(settingCols).AddRow("mail/from", "it@company.com", "string", now, now))

	h := &SettingHandler{Repo: repo.NewSettingRepo(db)}
	req := requestWithChiURLParams("GET", "/settings/mail%2Ffrom", nil, map[string]string{"key": "mail%2Ffrom"})
	rr := httptest.NewRecorder()
	h.GetSetting(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
}

func TestSettingHandler_UpdateSetting_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE settings`).
		WithArgs("dark", "string", "theme").
		WillReturnRows(sqlmock.NewRows(settingCols))

	h := &SettingHandler{Repo: repo.NewSettingRepo(db)}
	req := requestWithChiURLParams("PUT", "/settings/theme", []byte(`{"value":"dark"}`), map[string]string{"key": "theme"})
	rr := httptest.NewRecorder()
	h.UpdateSetting(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestSettingHandler_DeleteSetting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM settings WHERE key = \$1`).
		WithArgs("theme").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := &SettingHandler{Repo: repo.NewSettingRepo(db)}
	req := requestWithChiURLParams("DELETE", "/settings/theme", nil, map[string]string{"key": "theme"})
	rr := httptest.NewRecorder()
	h.DeleteSetting(rr, req)

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Setting deleted successfully") {
		t.Errorf("status %d body %s", rr.Code, rr.Body.String())
	}
}
