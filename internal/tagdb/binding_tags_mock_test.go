package tagdb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bindtags/internal/tag"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, *bytes.Buffer) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	logs := &bytes.Buffer{}
	return New(sqlx.NewDb(conn, "sqlmock"), slog.New(slog.NewTextHandler(logs, nil))), mock, logs
}

func TestSetTags_RollsBackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		mock func(mock sqlmock.Sqlmock)
	}{
		{
			name: "insert fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM binding_tags`).
					WithArgs("k1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT data FROM binding_tags`).
					WithArgs("k1", "a").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO binding_tags`).
					WithArgs("k1", "a", []byte{0, 0}).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
		},
		{
			name: "write-through fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM binding_tags`).
					WithArgs("k1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT data FROM binding_tags`).
					WithArgs("k1", "a").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO binding_tags`).
					WithArgs("k1", "a", []byte{0, 0}).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE binding_tags SET data`).
					WithArgs([]byte{7, 7}, "k1", "a", 2).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
		},
		{
			name: "commit fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM binding_tags`).
					WithArgs("k1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT data FROM binding_tags`).
					WithArgs("k1", "a").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO binding_tags`).
					WithArgs("k1", "a", []byte{0, 0}).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE binding_tags SET data`).
					WithArgs([]byte{7, 7}, "k1", "a", 2).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(sql.ErrTxDone)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock, logs := newMockStore(t)
			tt.mock(mock)

			ok := s.ForBinding(context.Background(), "k1").SetTags([]tag.View{tag.FromBytes("a", []byte{7, 7})})
			assert.False(t, ok)
			assert.Contains(t, logs.String(), "Failed to replace tags.")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSetTags_BeginFails(t *testing.T) {
	s, mock, _ := newMockStore(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	assert.False(t, s.ForBinding(context.Background(), "k1").SetTags(nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutByte_RestoresBufferOnFailure(t *testing.T) {
	s, mock, logs := newMockStore(t)
	mock.ExpectQuery(`SELECT data FROM binding_tags`).
		WithArgs("k1", "a").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte{1, 2}))
	mock.ExpectExec(`UPDATE binding_tags SET data`).
		WithArgs([]byte{9, 2}, "k1", "a", 2).
		WillReturnError(sql.ErrConnDone)

	w := s.ForBinding(context.Background(), "k1").CreateTag("a", 2)
	require.NotNil(t, w)
	assert.Equal(t, []byte{1, 2}, tag.Contents(w))

	assert.False(t, w.PutByte(0, 9))
	assert.Equal(t, []byte{1, 2}, tag.Contents(w))
	assert.Contains(t, logs.String(), "Failed to write tag.")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutByte_FailsWhenRowIsGone(t *testing.T) {
	s, mock, logs := newMockStore(t)
	mock.ExpectQuery(`SELECT data FROM binding_tags`).
		WithArgs("k1", "a").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte{1, 2}))
	mock.ExpectExec(`UPDATE binding_tags SET data`).
		WithArgs([]byte{9, 2}, "k1", "a", 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := s.ForBinding(context.Background(), "k1").CreateTag("a", 2)
	require.NotNil(t, w)

	assert.False(t, w.PutByte(0, 9))
	assert.Equal(t, []byte{1, 2}, tag.Contents(w))
	assert.Contains(t, logs.String(), "tag row no longer exists")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadErrorsReadAsNoTag(t *testing.T) {
	s, mock, logs := newMockStore(t)
	mock.ExpectQuery(`SELECT data FROM binding_tags`).
		WithArgs("k1", "a").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectQuery(`SELECT tagger_id, data FROM binding_tags`).
		WithArgs("k1").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectQuery(`SELECT data FROM binding_tags`).
		WithArgs("k1", "b").
		WillReturnError(sql.ErrConnDone)

	bt := s.ForBinding(context.Background(), "k1")
	assert.Nil(t, bt.Tag("a"))
	assert.Nil(t, bt.Tags())
	assert.Nil(t, bt.CreateTag("b", 1))
	assert.Contains(t, logs.String(), "binding_key=k1")
	require.NoError(t, mock.ExpectationsWereMet())
}
