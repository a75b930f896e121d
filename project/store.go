package project

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"sceneforge/elements"
	"sceneforge/settings"
	"sceneforge/types"
)

// ErrNotFound is returned when a project id is unknown to a store.
var ErrNotFound = fmt.Errorf("project not found")

// Store persists projects. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	Delete(ctx context.Context, id string) error
}

// record is the flat persisted form of a project. The element store is
// snapshotted into a plain bag map so the whole record round-trips as JSON.
type record struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Scenes    []types.Scene          `json:"scenes"`
	Bags      map[int]*elements.Bag  `json:"elementBags"`
	Settings  settings.VideoSettings `json:"settings"`
}

func encode(p *Project) ([]byte, error) {
	r := record{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Scenes:    p.Scenes,
		Bags:      p.Elements.Snapshot(),
		Settings:  p.Settings,
	}
	return json.Marshal(r)
}

func decode(data []byte) (*Project, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	p := &Project{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Scenes:    r.Scenes,
		Elements:  elements.NewStore(nil),
		Settings:  r.Settings,
	}
	if p.Scenes == nil {
		p.Scenes = []types.Scene{}
	}
	p.Elements.Restore(r.Bags)
	return p, nil
}

// MemoryStore keeps projects in process memory. It is the default backend
// when no Redis address is configured, and the one the tests use.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string][]byte)}
}

// Save stores an encoded copy of the project, so later mutations of the live
// project don't leak into the stored version.
func (s *MemoryStore) Save(ctx context.Context, p *Project) error {
	data, err := encode(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = data
	return nil
}

// Get returns a fresh decoded copy of the stored project.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Project, error) {
	s.mu.RLock()
	data, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return decode(data)
}

// List returns all stored projects, ordered by most recently updated.
func (s *MemoryStore) List(ctx context.Context) ([]*Project, error) {
	s.mu.RLock()
	blobs := make([][]byte, 0, len(s.projects))
	for _, data := range s.projects {
		blobs = append(blobs, data)
	}
	s.mu.RUnlock()

	out := make([]*Project, 0, len(blobs))
	for _, data := range blobs {
		p, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a project.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	delete(s.projects, id)
	return nil
}
