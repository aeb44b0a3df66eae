package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/totara/internal/configs"
	terrors "github.com/PolarWolf314/totara/internal/errors"

	"github.com/google/uuid"
)

// RegistryFile is the name of the persisted registry document inside the
// totara config directory.
const RegistryFile = "registry.toml"

// RemoteBinding associates an environment with a named remote and an
// object key on that remote.
type RemoteBinding struct {
	Remote string `toml:"remote"`
	Key    string `toml:"key"`
}

// Environment is one named secrets variant tracked for a project.
type Environment struct {
	Name   string         `toml:"name"`
	File   string         `toml:"file"` // relative to the project root
	Remote *RemoteBinding `toml:"remote,omitempty"`
}

// Project is a registered filesystem root and its tracked environments.
type Project struct {
	ID           string        `toml:"id"`
	Root         string        `toml:"root"`
	Environments []Environment `toml:"environments,omitempty"`
}

// Remote is a named storage backend configuration. Params hold
// backend-specific connection settings (bucket, region, credentials).
type Remote struct {
	Name    string            `toml:"name"`
	Backend string            `toml:"backend"`
	Params  map[string]string `toml:"params,omitempty"`
}

// document is the persisted TOML layout.
type document struct {
	Projects []Project `toml:"projects,omitempty"`
	Remotes  []Remote  `toml:"remotes,omitempty"`
}

// Registry is the full registry state, loaded at command start and saved
// atomically after each mutation. It is not safe for concurrent use across
// processes; two racing invocations resolve as last-writer-wins.
type Registry struct {
	path string
	doc  document
}

// Load reads the registry document from dir. A missing file yields an
// empty registry; an unreadable or undecodable file is reported as
// ErrRegistryCorrupt and never reset automatically.
func Load(dir string) (*Registry, error) {
	r := &Registry{path: filepath.Join(dir, RegistryFile)}

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return r, nil
	}

	if err := configs.LoadTOML(r.path, &r.doc); err != nil {
		return nil, fmt.Errorf("%w: %s (inspect or repair %s)", terrors.ErrRegistryCorrupt, err, r.path)
	}
	return r, nil
}

// Save writes the registry document atomically.
func (r *Registry) Save() error {
	if err := configs.SaveTOML(r.path, r.doc); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	return nil
}

// Register adds root as a new project with a fresh ID.
func (r *Registry) Register(root string) (*Project, error) {
	abs, err := normalizeRoot(root)
	if err != nil {
		return nil, err
	}

	if p := r.projectAt(abs); p != nil {
		return nil, fmt.Errorf("%w: %s", terrors.ErrAlreadyRegistered, p.Root)
	}

	r.doc.Projects = append(r.doc.Projects, Project{
		ID:   uuid.New().String(),
		Root: abs,
	})
	return &r.doc.Projects[len(r.doc.Projects)-1], nil
}

// Unregister removes the project owning root, cascading removal of all its
// environments and remote bindings.
func (r *Registry) Unregister(root string) error {
	abs, err := normalizeRoot(root)
	if err != nil {
		return err
	}

	for i := range r.doc.Projects {
		if r.doc.Projects[i].Root == abs {
			r.doc.Projects = append(r.doc.Projects[:i], r.doc.Projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", terrors.ErrNotRegistered, abs)
}

// LookupProject finds the project whose root contains dir, walking up the
// directory tree the same way version control tools locate their root.
func (r *Registry) LookupProject(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	for {
		if p := r.projectAt(abs); p != nil {
			return p, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, fmt.Errorf("%w: %s", terrors.ErrNotRegistered, dir)
		}
		abs = parent
	}
}

// Track creates or overwrites the environment's file binding. The file
// must resolve under the project root; it is stored relative to it. An
// existing remote binding survives re-tracking.
func (r *Registry) Track(project *Project, envName, filePath string) (*Environment, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file path: %w", err)
	}

	rel, err := filepath.Rel(project.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s is not under %s", terrors.ErrInvalidPath, filePath, project.Root)
	}

	for i := range project.Environments {
		if project.Environments[i].Name == envName {
			project.Environments[i].File = rel
			return &project.Environments[i], nil
		}
	}

	project.Environments = append(project.Environments, Environment{Name: envName, File: rel})
	return &project.Environments[len(project.Environments)-1], nil
}

// Resolve returns the named environment of the project.
func (r *Registry) Resolve(project *Project, envName string) (*Environment, error) {
	for i := range project.Environments {
		if project.Environments[i].Name == envName {
			return &project.Environments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", terrors.ErrUnknownEnvironment, envName)
}

// EnvFilePath returns the absolute path of the environment's tracked file.
func EnvFilePath(project *Project, env *Environment) string {
	return filepath.Join(project.Root, env.File)
}

// DefaultObjectKey derives the remote object key for an environment from
// the project identity: <project-id>/<environment>.env.
func DefaultObjectKey(project *Project, envName string) string {
	return project.ID + "/" + envName + ".env"
}

// BindRemote associates the environment with the named remote. An empty
// objectKey selects the default derived key. Rebinding replaces any
// existing binding.
func (r *Registry) BindRemote(project *Project, envName, remoteName, objectKey string) (*Environment, error) {
	if _, err := r.Remote(remoteName); err != nil {
		return nil, err
	}

	env, err := r.Resolve(project, envName)
	if err != nil {
		return nil, err
	}

	if objectKey == "" {
		objectKey = DefaultObjectKey(project, envName)
	}
	env.Remote = &RemoteBinding{Remote: remoteName, Key: objectKey}
	return env, nil
}

// UnbindRemote removes the environment's remote binding.
func (r *Registry) UnbindRemote(project *Project, envName string) error {
	env, err := r.Resolve(project, envName)
	if err != nil {
		return err
	}
	if env.Remote == nil {
		return fmt.Errorf("%w: %s", terrors.ErrNoRemoteBinding, envName)
	}
	env.Remote = nil
	return nil
}

// AddRemote registers a named backend configuration. Remote names are
// unique across all projects.
func (r *Registry) AddRemote(name, backend string, params map[string]string) (*Remote, error) {
	for i := range r.doc.Remotes {
		if r.doc.Remotes[i].Name == name {
			return nil, fmt.Errorf("%w: %s", terrors.ErrRemoteExists, name)
		}
	}

	r.doc.Remotes = append(r.doc.Remotes, Remote{Name: name, Backend: backend, Params: params})
	return &r.doc.Remotes[len(r.doc.Remotes)-1], nil
}

// Remote returns the named remote configuration.
func (r *Registry) Remote(name string) (*Remote, error) {
	for i := range r.doc.Remotes {
		if r.doc.Remotes[i].Name == name {
			return &r.doc.Remotes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", terrors.ErrUnknownRemote, name)
}

// Remotes returns all configured remotes in registration order.
func (r *Registry) Remotes() []Remote {
	out := make([]Remote, len(r.doc.Remotes))
	copy(out, r.doc.Remotes)
	return out
}

// RemoveRemote deletes the named remote. Bindings hold the remote by name
// only, so removal while environments still reference it is refused rather
// than cascaded.
func (r *Registry) RemoveRemote(name string) error {
	if _, err := r.Remote(name); err != nil {
		return err
	}

	var referers []string
	for i := range r.doc.Projects {
		p := &r.doc.Projects[i]
		for j := range p.Environments {
			if b := p.Environments[j].Remote; b != nil && b.Remote == name {
				referers = append(referers, fmt.Sprintf("%s (%s)", p.Root, p.Environments[j].Name))
			}
		}
	}
	if len(referers) > 0 {
		return fmt.Errorf("%w: %s referenced by %s", terrors.ErrRemoteInUse, name, strings.Join(referers, ", "))
	}

	for i := range r.doc.Remotes {
		if r.doc.Remotes[i].Name == name {
			r.doc.Remotes = append(r.doc.Remotes[:i], r.doc.Remotes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *Registry) projectAt(abs string) *Project {
	for i := range r.doc.Projects {
		if r.doc.Projects[i].Root == abs {
			return &r.doc.Projects[i]
		}
	}
	return nil
}

func normalizeRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", terrors.ErrInvalidPath, root)
	}
	return abs, nil
}
