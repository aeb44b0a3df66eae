package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	terrors "github.com/PolarWolf314/totara/internal/errors"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	configDir := t.TempDir()
	reg, err := Load(configDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return reg, configDir
}

func TestRegisterAndLookup(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()

	project, err := reg.Register(root)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if project.ID == "" {
		t.Error("Expected a generated project ID")
	}

	found, err := reg.LookupProject(root)
	if err != nil {
		t.Fatalf("LookupProject failed: %v", err)
	}
	if found.ID != project.ID {
		t.Errorf("Expected project %s, got %s", project.ID, found.ID)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()

	if _, err := reg.Register(root); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := reg.Register(root); !errors.Is(err, terrors.ErrAlreadyRegistered) {
		t.Errorf("Expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegisterMissingDirectory(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if _, err := reg.Register(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, terrors.ErrInvalidPath) {
		t.Errorf("Expected ErrInvalidPath, got %v", err)
	}
}

func TestLookupProjectWalksUp(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	if _, err := reg.Register(root); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	project, err := reg.LookupProject(nested)
	if err != nil {
		t.Fatalf("Expected lookup from a subdirectory to succeed, got %v", err)
	}
	if project.Root != root {
		t.Errorf("Expected root %s, got %s", root, project.Root)
	}
}

func TestLookupProjectUnregistered(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if _, err := reg.LookupProject(t.TempDir()); !errors.Is(err, terrors.ErrNotRegistered) {
		t.Errorf("Expected ErrNotRegistered, got %v", err)
	}
}

func TestTrackStoresRelativePath(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)

	env, err := reg.Track(project, "local", filepath.Join(root, "conf", ".env"))
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if env.File != filepath.Join("conf", ".env") {
		t.Errorf("Expected relative path, got %q", env.File)
	}
	if got := EnvFilePath(project, env); got != filepath.Join(root, "conf", ".env") {
		t.Errorf("Expected absolute path back, got %q", got)
	}
}

func TestTrackOutsideRootFails(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)

	outside := filepath.Join(t.TempDir(), ".env")
	if _, err := reg.Track(project, "local", outside); !errors.Is(err, terrors.ErrInvalidPath) {
		t.Errorf("Expected ErrInvalidPath, got %v", err)
	}
}

func TestTrackOverwriteKeepsBinding(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)

	if _, err := reg.Track(project, "prod", filepath.Join(root, ".env")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if _, err := reg.AddRemote("store", "local", nil); err != nil {
		t.Fatalf("AddRemote failed: %v", err)
	}
	if _, err := reg.BindRemote(project, "prod", "store", ""); err != nil {
		t.Fatalf("BindRemote failed: %v", err)
	}

	env, err := reg.Track(project, "prod", filepath.Join(root, ".env.production"))
	if err != nil {
		t.Fatalf("Re-track failed: %v", err)
	}
	if env.File != ".env.production" {
		t.Errorf("Expected updated file path, got %q", env.File)
	}
	if env.Remote == nil {
		t.Error("Expected remote binding to survive re-tracking")
	}
}

func TestResolveUnknownEnvironment(t *testing.T) {
	reg, _ := newTestRegistry(t)
	project, _ := reg.Register(t.TempDir())

	if _, err := reg.Resolve(project, "staging"); !errors.Is(err, terrors.ErrUnknownEnvironment) {
		t.Errorf("Expected ErrUnknownEnvironment, got %v", err)
	}
}

func TestBindRemoteDefaultKey(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)
	if _, err := reg.Track(project, "dev", filepath.Join(root, ".env.dev")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if _, err := reg.AddRemote("s3main", "s3", map[string]string{"bucket": "b"}); err != nil {
		t.Fatalf("AddRemote failed: %v", err)
	}

	env, err := reg.BindRemote(project, "dev", "s3main", "")
	if err != nil {
		t.Fatalf("BindRemote failed: %v", err)
	}
	want := project.ID + "/dev.env"
	if env.Remote.Key != want {
		t.Errorf("Expected derived key %q, got %q", want, env.Remote.Key)
	}
}

func TestBindRemoteUnknownRemote(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)
	if _, err := reg.Track(project, "dev", filepath.Join(root, ".env")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	if _, err := reg.BindRemote(project, "dev", "ghost", ""); !errors.Is(err, terrors.ErrUnknownRemote) {
		t.Errorf("Expected ErrUnknownRemote, got %v", err)
	}
}

func TestUnbindRemote(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)
	if _, err := reg.Track(project, "dev", filepath.Join(root, ".env")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	if err := reg.UnbindRemote(project, "dev"); !errors.Is(err, terrors.ErrNoRemoteBinding) {
		t.Errorf("Expected ErrNoRemoteBinding on unbound env, got %v", err)
	}

	if _, err := reg.AddRemote("store", "local", nil); err != nil {
		t.Fatalf("AddRemote failed: %v", err)
	}
	if _, err := reg.BindRemote(project, "dev", "store", ""); err != nil {
		t.Fatalf("BindRemote failed: %v", err)
	}
	if err := reg.UnbindRemote(project, "dev"); err != nil {
		t.Fatalf("UnbindRemote failed: %v", err)
	}

	env, _ := reg.Resolve(project, "dev")
	if env.Remote != nil {
		t.Error("Expected binding removed")
	}
}

func TestRemoveRemoteInUse(t *testing.T) {
	reg, _ := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)
	if _, err := reg.Track(project, "prod", filepath.Join(root, ".env")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if _, err := reg.AddRemote("store", "local", nil); err != nil {
		t.Fatalf("AddRemote failed: %v", err)
	}
	if _, err := reg.BindRemote(project, "prod", "store", ""); err != nil {
		t.Fatalf("BindRemote failed: %v", err)
	}

	err := reg.RemoveRemote("store")
	if !errors.Is(err, terrors.ErrRemoteInUse) {
		t.Fatalf("Expected ErrRemoteInUse, got %v", err)
	}
	if !strings.Contains(err.Error(), "prod") {
		t.Errorf("Expected the referencing environment in the message, got %q", err.Error())
	}

	if err := reg.UnbindRemote(project, "prod"); err != nil {
		t.Fatalf("UnbindRemote failed: %v", err)
	}
	if err := reg.RemoveRemote("store"); err != nil {
		t.Errorf("Expected removal after unbinding, got %v", err)
	}
}

func TestUnregisterCascades(t *testing.T) {
	reg, configDir := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)
	if _, err := reg.Track(project, "local", filepath.Join(root, ".env")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if _, err := reg.AddRemote("store", "local", nil); err != nil {
		t.Fatalf("AddRemote failed: %v", err)
	}
	if _, err := reg.BindRemote(project, "local", "store", ""); err != nil {
		t.Fatalf("BindRemote failed: %v", err)
	}
	if err := reg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := reg.Unregister(root); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}
	if err := reg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(configDir)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, err := reloaded.LookupProject(root); !errors.Is(err, terrors.ErrNotRegistered) {
		t.Errorf("Expected project gone after unregister, got %v", err)
	}
	// The remote section is independent and must survive.
	if _, err := reloaded.Remote("store"); err != nil {
		t.Errorf("Expected remote to survive project removal, got %v", err)
	}
}

func TestUnregisterUnknown(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if err := reg.Unregister(t.TempDir()); !errors.Is(err, terrors.ErrNotRegistered) {
		t.Errorf("Expected ErrNotRegistered, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reg, configDir := newTestRegistry(t)
	root := t.TempDir()
	project, _ := reg.Register(root)
	if _, err := reg.Track(project, "dev", filepath.Join(root, ".env.dev")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if _, err := reg.AddRemote("s3main", "s3", map[string]string{"bucket": "b", "region": "us-east-1"}); err != nil {
		t.Fatalf("AddRemote failed: %v", err)
	}
	if _, err := reg.BindRemote(project, "dev", "s3main", "custom/key.env"); err != nil {
		t.Fatalf("BindRemote failed: %v", err)
	}
	if err := reg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(configDir)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	found, err := reloaded.LookupProject(root)
	if err != nil {
		t.Fatalf("LookupProject after reload failed: %v", err)
	}
	env, err := reloaded.Resolve(found, "dev")
	if err != nil {
		t.Fatalf("Resolve after reload failed: %v", err)
	}
	if env.Remote == nil || env.Remote.Remote != "s3main" || env.Remote.Key != "custom/key.env" {
		t.Errorf("Expected binding to round-trip, got %+v", env.Remote)
	}

	remote, err := reloaded.Remote("s3main")
	if err != nil {
		t.Fatalf("Remote after reload failed: %v", err)
	}
	if remote.Params["bucket"] != "b" {
		t.Errorf("Expected params to round-trip, got %v", remote.Params)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	reg, configDir := newTestRegistry(t)
	if _, err := reg.Register(t.TempDir()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(configDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != RegistryFile {
			t.Errorf("Unexpected file left behind: %s", entry.Name())
		}
	}
}

func TestLoadCorruptRegistry(t *testing.T) {
	configDir := t.TempDir()
	path := filepath.Join(configDir, RegistryFile)
	if err := os.WriteFile(path, []byte("[[projects]\nthis is not toml"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt registry: %v", err)
	}

	_, err := Load(configDir)
	if !errors.Is(err, terrors.ErrRegistryCorrupt) {
		t.Fatalf("Expected ErrRegistryCorrupt, got %v", err)
	}

	// The corrupt file must be left in place for inspection.
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("Expected corrupt registry to be left untouched: %v", statErr)
	}
}
