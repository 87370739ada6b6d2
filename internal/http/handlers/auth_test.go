package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"subtrack/internal/auth"
	"subtrack/internal/domain"
	"subtrack/internal/middleware"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestAuthRegisterIssuesToken(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register",
		strings.NewReader(`{"email":"ana@example.com","name":"Ana","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	env.app.AuthRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("missing token in response: %v", body)
	}
	claims, err := middleware.VerifyJWT("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Role != "user" {
		t.Errorf("claims role = %q, want user", claims.Role)
	}
	user := body["user"].(map[string]any)
	if _, leaked := user["password_hash"]; leaked {
		t.Errorf("password hash leaked in response")
	}
	if user["email"] != "ana@example.com" {
		t.Errorf("user email = %v", user["email"])
	}
}

func TestAuthRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.addUser(domain.UserRoleUser, "ana@example.com")

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register",
		strings.NewReader(`{"email":"ana@example.com","name":"Ana","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	env.app.AuthRegister(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	env := newTestEnv()
	for name, payload := range map[string]string{
		"bad email":      `{"email":"not-an-email","name":"Ana","password":"correct horse"}`,
		"missing name":   `{"email":"ana@example.com","name":"","password":"correct horse"}`,
		"short password": `{"email":"ana@example.com","name":"Ana","password":"short"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		env.app.AuthRegister(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestAuthLogin(t *testing.T) {
	env := newTestEnv()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	u := env.addUser(domain.UserRoleUser, "ana@example.com")
	env.users.users[u.ID].PasswordHash = hash

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"Ana@Example.com ","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	env.app.AuthLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["token"] == "" {
		t.Fatalf("missing token")
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	u := env.addUser(domain.UserRoleUser, "ana@example.com")
	env.users.users[u.ID].PasswordHash = hash

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	env.app.AuthLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthLoginDisabledAccount(t *testing.T) {
	env := newTestEnv()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	u := env.addUser(domain.UserRoleUser, "ana@example.com")
	env.users.users[u.ID].PasswordHash = hash
	env.users.users[u.ID].Active = false

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	env.app.AuthLogin(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	env := newTestEnv()
	u := env.addUser(domain.UserRoleAdmin, "admin@example.com")

	rec := httptest.NewRecorder()
	env.app.Me(rec, authedRequest(http.MethodGet, "/v1/me", nil, u))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	user := decodeBody(t, rec)["user"].(map[string]any)
	if user["id"] != u.ID || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %v", user)
	}
}
