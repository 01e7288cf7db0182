package server

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockfolio/stockfolio"
)

func TestRegisterAndMe(t *testing.T) {
	ts := newTestServer(t, nil)

	if ts.token == "" {
		t.Fatal("register returned no token")
	}
	if ts.user.Email != "jo@example.com" || ts.user.Name != "Jo" {
		t.Errorf("user = %+v", ts.user)
	}

	w := ts.do(t, http.MethodGet, "/api/auth/me", ts.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d %s", w.Code, w.Body)
	}
	var me stockfolio.User
	decode(t, w, &me)
	if me.ID != ts.user.ID {
		t.Errorf("me = %+v", me)
	}
}

func TestRegisterPasswordNeverLeaks(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodGet, "/api/auth/me", ts.token, "")
	if body := w.Body.String(); strings.Contains(body, "password") || strings.Contains(body, "secret1") {
		t.Errorf("response leaks the password: %s", body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t, nil)
	// the email comparison is case-insensitive
	w := ts.do(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"JO@example.com","password":"secret1","name":"Jo Again"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d %s", w.Code, w.Body)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t, nil)
	cases := []string{
		`{"email":"not-an-email","password":"secret1","name":"X"}`,
		`{"email":"x@example.com","password":"short","name":"X"}`,
		`{"email":"x@example.com","password":"secret1"}`,
	}
	for _, body := range cases {
		w := ts.do(t, http.MethodPost, "/api/auth/register", "", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("register %s: status = %d", body, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"jo@example.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d %s", w.Code, w.Body)
	}
	var reply tokenResponse
	decode(t, w, &reply)
	if reply.AccessToken == "" || reply.TokenType != "bearer" {
		t.Errorf("reply = %+v", reply)
	}

	// wrong password and unknown email get the same answer
	w = ts.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"jo@example.com","password":"wrong-1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", w.Code)
	}
	wrongPass := w.Body.String()

	w = ts.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"nobody@example.com","password":"secret1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d", w.Code)
	}
	if w.Body.String() != wrongPass {
		t.Errorf("answers differ: %q vs %q", wrongPass, w.Body)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/api/holdings", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/api/holdings", "garbage", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d", w.Code)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	ts := newTestServer(t, nil)

	claims := jwt.RegisteredClaims{
		Subject:   ts.user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	w := ts.do(t, http.MethodGet, "/api/holdings", expired, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "expired") {
		t.Errorf("body = %s, want an expired-token message", w.Body)
	}
}

func TestAuthDeletedUser(t *testing.T) {
	ts := newTestServer(t, nil)
	// a valid token whose user no longer exists
	delete(ts.store.users, ts.user.ID)

	w := ts.do(t, http.MethodGet, "/api/holdings", ts.token, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("deleted user status = %d", w.Code)
	}
}
