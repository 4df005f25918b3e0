// Package storage reads and writes JSON blobs kept by the backend on behalf
// of the current client.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/celerix-dev/flowclient/internal/client/client"
	"github.com/celerix-dev/flowclient/internal/common"
	"github.com/celerix-dev/flowclient/internal/logging"
)

const parseSnippetLen = 100

// ErrDecode marks stored data that does not decode into the requested type.
var ErrDecode = errors.New("stored value has an unexpected shape")

// ClientIDSource supplies the identifier every storage request is scoped to.
type ClientIDSource interface {
	ClientID(ctx context.Context) (string, error)
}

type Service struct {
	api client.Client
	ids ClientIDSource
	log logging.Logger

	mu   sync.Mutex
	keys map[string]*keyState
}

// keyState orders writes to one key. issued counts Save calls, sent is the
// sequence number of the newest write that reached the backend.
type keyState struct {
	mu     sync.Mutex
	issued uint64
	sent   uint64
}

func NewService(api client.Client, ids ClientIDSource, log logging.Logger) *Service {
	return &Service{
		api:  api,
		ids:  ids,
		log:  log.With("component", "storage"),
		keys: make(map[string]*keyState),
	}
}

// Path maps a storage key to its backend route.
func Path(key string) string {
	if key == common.KeyKanban {
		return "/api/kanban"
	}
	return "/api/store/" + url.PathEscape(key)
}

func (s *Service) header(ctx context.Context) (http.Header, error) {
	id, err := s.ids.ClientID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve client id: %w", err)
	}
	h := http.Header{}
	h.Set(common.HeaderClientID, id)
	return h, nil
}

func (s *Service) next(key string) (*keyState, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ks, ok := s.keys[key]
	if !ok {
		ks = &keyState{}
		s.keys[key] = ks
	}
	ks.issued++
	return ks, ks.issued
}

// Save stores data as JSON under key. Concurrent saves to the same key are
// serialized, and a save overtaken by a later one is dropped, so the value
// of the last call is what the backend ends up with.
func (s *Service) Save(ctx context.Context, key string, data any) error {
	s.log.Debug(ctx, "saving", "key", key)

	body, err := json.Marshal(data)
	if err != nil {
		s.log.Error(ctx, "failed to save", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: encode: %w", key, err)
	}

	ks, seq := s.next(key)
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if seq < ks.sent {
		s.log.Debug(ctx, "save superseded", "key", key, "seq", seq, "sent", ks.sent)
		return nil
	}

	h, err := s.header(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to save", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	resp, err := s.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   Path(key),
		Header: h,
		Body:   json.RawMessage(body),
	})
	if err != nil {
		s.log.Error(ctx, "failed to save", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	ks.sent = seq

	if err := resp.Err(); err != nil {
		se := err.(*client.StatusError)
		se.Op = "failed to save " + key
		s.log.Error(ctx, "failed to save", "key", key, "error", se)
		return se
	}
	return nil
}

// Load returns the raw JSON stored under key. Missing data, a non-2xx
// status, a null body and a body that is not JSON all yield nil with no
// error. Only transport failures are returned.
func (s *Service) Load(ctx context.Context, key string) (json.RawMessage, error) {
	s.log.Debug(ctx, "loading", "key", key)

	h, err := s.header(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	resp, err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: Path(key), Header: h})
	if err != nil {
		s.log.Error(ctx, "failed to load", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if !resp.OK() {
		if err := resp.Err(); !errors.Is(err, client.ErrNotFound) {
			s.log.Warn(ctx, "load returned no data", "key", key, "error", err)
		}
		return nil, nil
	}

	if !json.Valid(resp.Body) {
		snippet := resp.Body
		if len(snippet) > parseSnippetLen {
			snippet = snippet[:parseSnippetLen]
		}
		s.log.Error(ctx, "failed to parse JSON", "key", key, "body", string(snippet))
		return nil, nil
	}

	if isNull(resp.Body) {
		return nil, nil
	}
	return json.RawMessage(resp.Body), nil
}

// Loader is the read side of Service.
type Loader interface {
	Load(ctx context.Context, key string) (json.RawMessage, error)
}

// LoadAs loads key through l and decodes it into a T. A nil result with a
// nil error means no data. Data of the wrong shape yields ErrDecode.
func LoadAs[T any](ctx context.Context, l Loader, key string) (*T, error) {
	raw, err := l.Load(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", key, ErrDecode, err)
	}
	return &v, nil
}

func isNull(b []byte) bool {
	var v any
	return json.Unmarshal(b, &v) == nil && v == nil
}
