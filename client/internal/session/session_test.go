package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/inventory/client/internal/apperr"
	"github.com/maynagashev/inventory/client/internal/session"
)

const testPassword = "master-password"

// openers возвращает оба хранилища для общих тестов контракта.
func openers(t *testing.T) map[string]func(path string) (session.Store, error) {
	t.Helper()
	return map[string]func(path string) (session.Store, error){
		"sqlite": func(path string) (session.Store, error) {
			return session.Open(session.Config{Backend: session.BackendSQLite, Path: path})
		},
		"kdbx": func(path string) (session.Store, error) {
			return session.Open(session.Config{Backend: session.BackendKDBX, Path: path, Password: testPassword})
		},
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()
	for name, open := range openers(t) {
		t.Run(name, func(t *testing.T) {
			store, err := open(filepath.Join(t.TempDir(), "session.db"))
			require.NoError(t, err)
			defer store.Close()

			_, ok, err := store.LatestToken(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "Новое хранилище не содержит токена")

			require.NoError(t, store.SaveToken(ctx, "first"))
			require.NoError(t, store.SaveToken(ctx, "second"))

			token, ok, err := store.LatestToken(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", token)

			require.NoError(t, store.ClearTokens(ctx))
			_, ok, err = store.LatestToken(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	for name, open := range openers(t) {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.db")

			store, err := open(path)
			require.NoError(t, err)
			require.NoError(t, store.SaveToken(ctx, "persisted"))
			require.NoError(t, store.Close())

			reopened, err := open(path)
			require.NoError(t, err)
			defer reopened.Close()

			token, ok, err := reopened.LatestToken(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "persisted", token)
		})
	}
}

func TestStore_ReadOnlyWhenLocked(t *testing.T) {
	ctx := context.Background()
	for name, open := range openers(t) {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.db")

			owner, err := open(path)
			require.NoError(t, err)
			defer owner.Close()
			require.NoError(t, owner.SaveToken(ctx, "owner-token"))

			second, err := open(path)
			require.NoError(t, err)
			defer second.Close()
			assert.False(t, owner.ReadOnly())
			assert.True(t, second.ReadOnly())

			err = second.SaveToken(ctx, "other")
			require.Error(t, err)
			assert.ErrorIs(t, err, session.ErrReadOnly)
			assert.True(t, apperr.IsAuth(err), "Ошибки хранилища приходят как AuthError")

			err = second.ClearTokens(ctx)
			assert.ErrorIs(t, err, session.ErrReadOnly)

			token, ok, err := second.LatestToken(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "owner-token", token)

			// Читающий процесс видит изменения владельца
			require.NoError(t, owner.SaveToken(ctx, "owner-token-2"))
			token, ok, err = second.LatestToken(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "owner-token-2", token)

			require.NoError(t, owner.ClearTokens(ctx))
			_, ok, err = second.LatestToken(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  session.Config
	}{
		{name: "неизвестный тип", cfg: session.Config{Backend: "redis", Path: filepath.Join(dir, "x")}},
		{name: "sqlite без пути", cfg: session.Config{Backend: session.BackendSQLite}},
		{name: "kdbx без пароля", cfg: session.Config{Backend: session.BackendKDBX, Path: filepath.Join(dir, "s.kdbx")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := session.Open(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, store)
		})
	}
}

func TestOpenKeepass_WrongPassword(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.kdbx")

	store, err := session.OpenKeepass(path, testPassword)
	require.NoError(t, err)
	require.NoError(t, store.SaveToken(ctx, "tok"))
	require.NoError(t, store.Close())

	_, err = session.OpenKeepass(path, "wrong")
	require.Error(t, err)
}
