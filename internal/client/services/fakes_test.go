package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/celerix-dev/flowclient/internal/client/models"
)

// ---- fake blob store ----

type saveCall struct {
	Key  string
	Data json.RawMessage
}

type fakeStore struct {
	mu      sync.Mutex
	blobs   map[string]json.RawMessage
	saves   []saveCall
	LoadErr error
	SaveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string]json.RawMessage{}}
}

func (f *fakeStore) Save(_ context.Context, key string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, saveCall{Key: key, Data: raw})
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.blobs[key] = raw
	return nil
}

func (f *fakeStore) Load(_ context.Context, key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.blobs[key], nil
}

func (f *fakeStore) put(key, raw string) {
	f.blobs[key] = json.RawMessage(raw)
}

func (f *fakeStore) saveCalls() []saveCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]saveCall(nil), f.saves...)
}

// ---- fake theme ----

type fakeTheme struct {
	mu      sync.Mutex
	applied []models.Theme
}

func (f *fakeTheme) ApplyTheme(t models.Theme) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, t)
}

func (f *fakeTheme) calls() []models.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Theme(nil), f.applied...)
}
