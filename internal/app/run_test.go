package app

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"surfsup-server/internal/config"
	"surfsup-server/internal/db/dbtest"

	_ "github.com/mattn/go-sqlite3"
)

func testConfig(path, addr string) config.Config {
	return config.Config{
		AppEnv:                "dev",
		HTTPAddr:              addr,
		HTTPReadHeaderTimeout: 5 * time.Second,
		HTTPShutdownTimeout:   5 * time.Second,
		Driver:                "sqlite3",
		Path:                  path,
		MaxOpenConns:          2,
		MaxIdleConns:          2,
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		t.Fatalf("close listener: %v", err)
	}
	return addr
}

func TestRun_MissingDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources", "hawaii.sqlite")
	err := Run(context.Background(), testConfig(path, "127.0.0.1:0"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("Run() = %v; want dataset not found", err)
	}
}

func TestRun_WrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.sqlite")
	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := conn.Exec(`CREATE TABLE readings (ts TEXT, value REAL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	err = Run(context.Background(), testConfig(path, "127.0.0.1:0"))
	if err == nil || !strings.Contains(err.Error(), "dataset schema") {
		t.Fatalf("Run() = %v; want schema error", err)
	}
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	addr := freeAddr(t)
	cfg := testConfig(dbtest.WriteFile(t, dbtest.Hawaii()), addr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := client.Get("http://" + addr + "/api/v1.0/stations")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("stations status=%d want=%d", resp.StatusCode, http.StatusOK)
			}
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server never came up: %v", err)
		}
		select {
		case err := <-done:
			t.Fatalf("Run exited early: %v", err)
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() = %v; want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
