package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gkk99-backend/internal/models"
)

const testSessionToken = "4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a"

type fakeAPI struct {
	validToken  string
	logoutCalls int
	failLogout  bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}

	bearer := func(r *http.Request) string {
		return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	account := models.Account{ID: "acc-1", Username: "admin", Role: models.RoleMainAdmin, IsActive: true}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "gkk99admin2024" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "error": "invalid username or password",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    models.LoginResponse{User: &account, Token: f.validToken},
		})
	})

	mux.HandleFunc("/api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if bearer(r) != f.validToken {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "error": "invalid or expired token",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": account})
	})

	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls++
		if f.failLogout {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false, "error": "store unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "logged out"})
	})

	mux.HandleFunc("/api/content", func(w http.ResponseWriter, r *http.Request) {
		content := models.SiteContent{
			ID:      "1",
			Title:   "GKK99",
			Pricing: models.Pricing{Slots: "20 Ks", WinRate: "96.5%"},
		}
		if r.Method == http.MethodPut {
			if bearer(r) != f.validToken {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false, "error": "authentication required",
				})
				return
			}
			var req models.UpdateContentRequest
			json.NewDecoder(r.Body).Decode(&req)
			req.Apply(&content)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": content})
	})

	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) (*Client, *MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	store := NewMemoryStore()
	return New(srv.URL, store), store
}

func TestResume_NoCache(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{validToken: testSessionToken})

	state, err := client.Resume(context.Background())
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if state != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated", state)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	client, store := newTestClient(t, &fakeAPI{validToken: testSessionToken})

	account, err := client.Login(context.Background(), "admin", "gkk99admin2024")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if account.Username != "admin" {
		t.Errorf("username = %q", account.Username)
	}
	if client.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", client.State())
	}

	cached, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cached.Token != testSessionToken || cached.User.Username != "admin" {
		t.Errorf("cached = %+v", cached)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	client, store := newTestClient(t, &fakeAPI{validToken: testSessionToken})

	if _, err := client.Login(context.Background(), "admin", "nope"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Error("failed login must not persist a session")
	}
}

func TestResume_ValidCache(t *testing.T) {
	client, store := newTestClient(t, &fakeAPI{validToken: testSessionToken})
	store.Save(&CachedSession{Token: testSessionToken, User: models.Account{Username: "admin"}})

	state, err := client.Resume(context.Background())
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if state != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", state)
	}
	if client.Account() == nil || client.Account().Username != "admin" {
		t.Error("account snapshot not refreshed from server")
	}
}

func TestResume_StaleCacheCleared(t *testing.T) {
	client, store := newTestClient(t, &fakeAPI{validToken: testSessionToken})
	store.Save(&CachedSession{Token: "stale-token", User: models.Account{Username: "admin"}})

	state, err := client.Resume(context.Background())
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if state != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated", state)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Error("stale cache should have been cleared")
	}
}

func TestLogout_ClearsLocallyEvenOnRemoteFailure(t *testing.T) {
	api := &fakeAPI{validToken: testSessionToken, failLogout: true}
	client, store := newTestClient(t, api)

	if _, err := client.Login(context.Background(), "admin", "gkk99admin2024"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	err := client.Logout(context.Background())
	if err == nil {
		t.Error("expected remote logout error to surface")
	}
	if api.logoutCalls != 1 {
		t.Errorf("logout calls = %d, want 1", api.logoutCalls)
	}
	if client.State() != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated", client.State())
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Error("local cache must be cleared regardless of remote outcome")
	}
}

func TestUpdateContent_RequiresAuth(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{validToken: testSessionToken})

	title := "X"
	_, err := client.UpdateContent(context.Background(), models.UpdateContentRequest{Title: &title})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestGetContent_Public(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{validToken: testSessionToken})

	content, err := client.GetContent(context.Background())
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if content.Pricing.Slots != "20 Ks" {
		t.Errorf("slots = %q", content.Pricing.Slots)
	}
}

func TestFileStore(t *testing.T) {
	path := t.TempDir() + "/session.json"
	store := NewFileStore(path)

	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("empty load err = %v, want ErrNoSession", err)
	}

	session := &CachedSession{Token: testSessionToken, User: models.Account{Username: "admin"}}
	if err := store.Save(session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != session.Token || got.User.Username != "admin" {
		t.Errorf("got = %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Error("cache should be gone after Clear")
	}
	if err := store.Clear(); err != nil {
		t.Error("Clear must be idempotent")
	}
}
