package storage

import (
	"context"
	"errors"
	"testing"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/registry"
)

func newTestLocalBackend(t *testing.T) Backend {
	t.Helper()
	backend, err := newLocalBackend(map[string]string{ParamPath: t.TempDir()})
	if err != nil {
		t.Fatalf("newLocalBackend failed: %v", err)
	}
	return backend
}

func TestLocalPutGet(t *testing.T) {
	backend := newTestLocalBackend(t)
	ctx := context.Background()

	if err := backend.Put(ctx, "proj/dev.env", []byte("A=1\n")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := backend.Get(ctx, "proj/dev.env")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "A=1\n" {
		t.Errorf("Expected stored content back, got %q", data)
	}
}

func TestLocalGetMissing(t *testing.T) {
	backend := newTestLocalBackend(t)

	_, err := backend.Get(context.Background(), "nope.env")
	if !errors.Is(err, terrors.ErrRemoteNotFound) {
		t.Errorf("Expected ErrRemoteNotFound, got %v", err)
	}
}

func TestLocalExists(t *testing.T) {
	backend := newTestLocalBackend(t)
	ctx := context.Background()

	ok, err := backend.Exists(ctx, "missing.env")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("Expected missing key to report false")
	}

	if err := backend.Put(ctx, "present.env", []byte("X=1\n")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	ok, err = backend.Exists(ctx, "present.env")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Expected present key to report true")
	}
}

func TestLocalRejectsEscapingKey(t *testing.T) {
	backend := newTestLocalBackend(t)

	if _, err := backend.Get(context.Background(), "../outside"); err == nil {
		t.Error("Expected error for key escaping the base directory")
	}
	if err := backend.Put(context.Background(), "../../etc/evil", []byte("x")); err == nil {
		t.Error("Expected error for key escaping the base directory")
	}
}

func TestOpenDispatch(t *testing.T) {
	remote := &registry.Remote{
		Name:    "store",
		Backend: KindLocal,
		Params:  map[string]string{ParamPath: t.TempDir()},
	}

	backend, err := Open(context.Background(), remote)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := backend.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Errorf("Expected opened backend to work, got %v", err)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	remote := &registry.Remote{Name: "weird", Backend: "carrier-pigeon"}

	if _, err := Open(context.Background(), remote); err == nil {
		t.Error("Expected error for unknown backend kind")
	}
}
