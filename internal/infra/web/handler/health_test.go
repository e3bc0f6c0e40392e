package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Driver stub that answers every query with a single count row, standing in
// for the outbox backlog query.

type backlogDriver struct{ count int64 }

func (d *backlogDriver) Open(name string) (driver.Conn, error) {
	return &backlogConn{count: d.count}, nil
}

type backlogConn struct{ count int64 }

func (c *backlogConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}

func (c *backlogConn) Close() error { return nil }

func (c *backlogConn) Begin() (driver.Tx, error) {
	return nil, errors.New("not supported")
}

func (c *backlogConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return &backlogRows{count: c.count}, nil
}

type backlogRows struct {
	count int64
	done  bool
}

func (r *backlogRows) Columns() []string { return []string{"count"} }
func (r *backlogRows) Close() error      { return nil }

func (r *backlogRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.count
	return nil
}

func init() {
	sql.Register("backlog-small", &backlogDriver{count: 3})
	sql.Register("backlog-large", &backlogDriver{count: 5000})
}

func TestHealthHandler_Outbox(t *testing.T) {
	serve := func(t *testing.T, driverName string) *httptest.ResponseRecorder {
		t.Helper()
		db, err := sql.Open(driverName, "")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		h := NewHealthHandler("ctrlmarket-test", WithOutbox(db))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		return rec
	}

	t.Run("Should report healthy while the backlog stays small", func(t *testing.T) {
		rec := serve(t, "backlog-small")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "outbox backlog")
	})

	t.Run("Should flag a stalled relay without turning the endpoint red", func(t *testing.T) {
		rec := serve(t, "backlog-large")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "outbox backlog")
	})
}
