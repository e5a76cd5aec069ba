package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

func newStore(t *testing.T) (*KVStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewKVStore(mock), mock
}

func TestKVStore_Get_OK(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs("user:1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":1}`)))

	got, err := s.Get(context.Background(), "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_Get_NotFound(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store`)).
		WithArgs("user:404").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.Get(context.Background(), "user:404")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_Put(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	value := []byte(`{"box":2}`)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key, value, updated_at)`)).
		WithArgs("card:1:abc", value).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Put(context.Background(), "card:1:abc", value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_Put_Error(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store`)).
		WithArgs("card:1:abc", []byte(`{}`)).
		WillReturnError(errors.New("connection reset"))

	err := s.Put(context.Background(), "card:1:abc", []byte(`{}`))
	assert.ErrorContains(t, err, "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_List(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv_store WHERE starts_with(key, $1) ORDER BY key`)).
		WithArgs("card:1:").
		WillReturnRows(pgxmock.NewRows([]string{"key", "value"}).
			AddRow("card:1:a", []byte(`{"id":"a"}`)).
			AddRow("card:1:b", []byte(`{"id":"b"}`)))

	entries, err := s.List(context.Background(), "card:1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "card:1:a", entries[0].Key)
	assert.JSONEq(t, `{"id":"b"}`, string(entries[1].Value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_DeletePrefix(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_store WHERE starts_with(key, $1)`)).
		WithArgs("card:1:").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := s.DeletePrefix(context.Background(), "card:1:")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
