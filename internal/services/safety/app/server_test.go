package server

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/festsafe/festsafe/internal/services/safety/auth"
)

func testAccessGrantConfig(t *testing.T) auth.AccessGrantConfig {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return auth.AccessGrantConfig{
		Issuer:   "https://id.festsafe.test",
		Audience: "festsafe-safety",
		Key:      pub,
		Now:      time.Now,
	}
}

func TestNewServerListens(t *testing.T) {
	srv, err := New(Config{
		Port:        0,
		DBPath:      filepath.Join(t.TempDir(), "safety.db"),
		AccessGrant: testAccessGrantConfig(t),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.Addr() == "" {
		t.Fatal("expected a bound listener address")
	}
	if srv.Service() == nil {
		t.Fatal("expected an operation surface")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Serve(ctx); err != nil {
		t.Fatalf("serve with canceled context: %v", err)
	}
}

func TestNewServerCreatesStorageDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "safety.db")
	srv, err := New(Config{
		Port:        0,
		DBPath:      path,
		AccessGrant: testAccessGrantConfig(t),
	})
	if err != nil {
		t.Fatalf("new server with nested db path: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Serve(ctx); err != nil {
		t.Fatalf("serve with canceled context: %v", err)
	}
}

func TestServerNilSafety(t *testing.T) {
	var srv *Server
	if srv.Addr() != "" {
		t.Fatal("nil server must report empty address")
	}
	if srv.Service() != nil {
		t.Fatal("nil server must report nil service")
	}
}
