package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/inventory/models"
)

const testToken = "tok-alice"

// newTestServer поднимает минимальный API инвентаря для одного пользователя alice/secret.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+testToken
	}

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.AuthRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "alice" || req.Password != "secret" {
			http.Error(w, "неверные учетные данные", http.StatusUnauthorized)
			return
		}
		writeJSON(w, models.LoginResponse{AccessToken: testToken})
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	mux.HandleFunc("GET /api/v1/auth/account", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, models.AccountResponse{AuthUserID: 7})
	})
	mux.HandleFunc("GET /api/v1/category/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, models.CategoriesResponse{Categories: []models.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Boats"}}})
	})
	mux.HandleFunc("GET /api/v1/category/{id}/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.Error(w, "категория не найдена", http.StatusNotFound)
			return
		}
		writeJSON(w, models.RentalItemsResponse{Items: []models.RentalItem{{ID: 10, Name: "Saw"}}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// run выполняет команду клиента с хранилищем сессии в dir.
func run(t *testing.T, srv *httptest.Server, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{logDir: filepath.Join(dir, "logs"), out: &out}
	cmd := newRootCmd(a)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args,
		"--config", filepath.Join(dir, "missing.ini"),
		"--server-url", srv.URL+"/api/v1/",
		"--session-backend", "sqlite",
		"--session-path", filepath.Join(dir, "session.db"),
	))
	err := cmd.ExecuteContext(context.Background())
	require.NoError(t, a.teardown())
	return out.String(), err
}

func TestCommands_SessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	out, err := run(t, srv, dir, "account")
	require.NoError(t, err)
	assert.Equal(t, "Нет активной сессии\n", out)

	out, err = run(t, srv, dir, "login", "-u", "alice", "-p", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Вход выполнен, id пользователя: 7\n", out)

	// Токен пережил перезапуск
	out, err = run(t, srv, dir, "account")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	out, err = run(t, srv, dir, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Выход выполнен\n", out)

	out, err = run(t, srv, dir, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Активной сессии не было\n", out)
}

func TestCommands_LoginErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "неверный пароль", args: []string{"login", "-u", "alice", "-p", "wrong"}, wantErr: "неверные учетные данные"},
		{name: "нет пароля", args: []string{"login", "-u", "alice"}, wantErr: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, srv, t.TempDir(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommands_Lists(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	out, err := run(t, srv, dir, "categories")
	require.NoError(t, err)
	assert.Equal(t, "1\tTools\n2\tBoats\n", out)

	out, err = run(t, srv, dir, "items", "1")
	require.NoError(t, err)
	assert.Equal(t, "10\tSaw\n", out)

	_, err = run(t, srv, dir, "items", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "некорректный id категории")

	_, err = run(t, srv, dir, "items", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "категория не найдена")
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	a := &app{logDir: t.TempDir(), out: &out}
	cmd := newRootCmd(a)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Version: dev")
	assert.Nil(t, a.sessions, "для --version хранилище не открывается")
}

func TestSetupLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	f, err := setupLogging(dir, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.FileExists(t, filepath.Join(dir, logFileName))
}
