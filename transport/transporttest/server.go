// Package transporttest runs the development backend on an in-memory
// SQLite database for tests.
package transporttest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/eduzap/eduzap/application/backend"
	"github.com/eduzap/eduzap/cmd/config"
	imagerepo "github.com/eduzap/eduzap/repository/image"
	requestrepo "github.com/eduzap/eduzap/repository/request"
	"github.com/eduzap/eduzap/transport"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewServer starts a backend server that is closed with the test. Images are
// dropped unless a Redis client has been installed.
func NewServer(t testing.TB, opts ...backend.Option) *httptest.Server {
	t.Helper()

	db, err := sqlx.Connect(config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	repo := requestrepo.NewRequestRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := backend.NewBackendApp(&config.Config{}, repo, imagerepo.NewImageRepository(0), nil, opts...)
	srv := httptest.NewServer(transport.NewTransport(app))
	t.Cleanup(func() {
		srv.Close()
		_ = db.Close()
	})
	return srv
}
