package preset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/oklog/ulid/v2"
)

// state is the full persisted file contents.
type state struct {
	Records         []Record `json:"records"`
	CurrentPresetID string   `json:"current_preset_id,omitempty"`
	APIKeyUsed      bool     `json:"api_key_used,omitempty"`
}

// Store persists the user's preset records and the current-selection
// pointer. Every mutation is a read-modify-write of the whole file; the
// visible list is recomputed from the records on every read.
type Store struct {
	mu   sync.Mutex
	path string
	st   state
}

// DefaultPath returns ~/.config/rewrite-this/presets.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rewrite-this", "presets.json"), nil
}

// Open loads the store from path, starting empty if the file does not
// exist yet. An empty store resolves to exactly the built-in presets.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.st); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns the resolved preset list: visible built-ins (shadows
// applied) followed by user presets in insertion order.
func (s *Store) List() []Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolve(s.st.Records)
}

// Get looks id up in the resolved list.
func (s *Store) Get(id string) (Preset, bool) {
	for _, p := range s.List() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Add appends a new user preset and makes it the current selection.
// Name and prompt validation is the caller's job.
func (s *Store) Add(name, prompt string) (Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := "user_" + ulid.Make().String()
	s.st.Records = append(s.st.Records, Record{
		Kind:   KindUser,
		ID:     id,
		Name:   name,
		Prompt: prompt,
	})
	s.st.CurrentPresetID = id
	if err := s.save(); err != nil {
		return Preset{}, err
	}
	return Preset{ID: id, Name: name, Prompt: prompt}, nil
}

// Edit updates a preset. Editing a built-in creates or updates its
// shadow record; the built-in template itself is never touched.
func (s *Store) Edit(id, name, prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if IsBuiltin(id) {
		for i, r := range s.st.Records {
			if r.Kind == KindShadow && r.Of == id {
				s.st.Records[i].Name = name
				s.st.Records[i].Prompt = prompt
				return s.save()
			}
		}
		s.st.Records = append(s.st.Records, Record{
			Kind:   KindShadow,
			Of:     id,
			Name:   name,
			Prompt: prompt,
		})
		return s.save()
	}

	for i, r := range s.st.Records {
		if r.Kind == KindUser && r.ID == id {
			s.st.Records[i].Name = name
			s.st.Records[i].Prompt = prompt
			return s.save()
		}
	}
	return ErrNotFound
}

// Delete removes a preset. Built-ins are tombstoned (idempotent); user
// presets are removed from the collection. If the deleted preset was
// the current selection, the pointer moves to the first entry of the
// freshly resolved list, or is cleared if the list is now empty.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case IsBuiltin(id):
		tombstoned := false
		for _, r := range s.st.Records {
			if r.Kind == KindTombstone && r.Of == id {
				tombstoned = true
				break
			}
		}
		if !tombstoned {
			s.st.Records = append(s.st.Records, Record{Kind: KindTombstone, Of: id})
		}
	default:
		idx := -1
		for i, r := range s.st.Records {
			if r.Kind == KindUser && r.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		s.st.Records = append(s.st.Records[:idx], s.st.Records[idx+1:]...)
	}

	if s.st.CurrentPresetID == id {
		resolved := resolve(s.st.Records)
		if len(resolved) == 0 {
			s.st.CurrentPresetID = ""
		} else {
			s.st.CurrentPresetID = resolved[0].ID
		}
	}
	return s.save()
}

// Duplicate adds a copy of p as a new user preset.
func (s *Store) Duplicate(p Preset) (Preset, error) {
	return s.Add(p.Name+" (Copy)", p.Prompt)
}

// ToggleNext advances the current selection to the next resolved
// preset, wrapping around. A pointer that no longer resolves lands on
// the first entry.
func (s *Store) ToggleNext() (Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := resolve(s.st.Records)
	if len(resolved) == 0 {
		return Preset{}, ErrNotFound
	}

	idx := -1
	for i, p := range resolved {
		if p.ID == s.st.CurrentPresetID {
			idx = i
			break
		}
	}
	next := resolved[(idx+1)%len(resolved)]
	s.st.CurrentPresetID = next.ID
	if err := s.save(); err != nil {
		return Preset{}, err
	}
	return next, nil
}

// CurrentID returns the persisted selection pointer, which may be empty
// or reference an ID absent from the resolved list.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.CurrentPresetID
}

// SetCurrent points the selection at id.
func (s *Store) SetCurrent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.CurrentPresetID = id
	return s.save()
}

// APIKeyUsed reports whether a rewrite has been attempted with the
// configured key before (the first-run gate).
func (s *Store) APIKeyUsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.APIKeyUsed
}

// MarkAPIKeyUsed records that the key has been exercised.
func (s *Store) MarkAPIKeyUsed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.APIKeyUsed = true
	return s.save()
}

// save atomically replaces the store file. Caller must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
