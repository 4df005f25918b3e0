package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
)

// fakeBackend is an in-memory stand-in for the Flow server's JSON API.
type fakeBackend struct {
	mu        sync.Mutex
	blobs     map[string]json.RawMessage // clientID|key
	names     map[string]string
	admins    map[string]bool
	recovery  map[string]string // code -> client id
	secret    string
	nextIssue string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		blobs:    map[string]json.RawMessage{},
		names:    map[string]string{},
		admins:   map[string]bool{},
		recovery: map[string]string{},
		secret:   "letmein",
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "test"})
	})

	mux.HandleFunc("GET /api/persona", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.Header.Get("X-Client-ID")
		persona := "client"
		if b.admins[id] {
			persona = "admin"
		}
		writeJSON(w, http.StatusOK, map[string]string{"persona": persona, "name": b.names[id], "version": "test"})
	})

	mux.HandleFunc("POST /api/persona/admin", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Secret string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Secret != b.secret {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid admin secret"})
			return
		}
		b.mu.Lock()
		b.admins[r.Header.Get("X-Client-ID")] = true
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	})

	mux.HandleFunc("POST /api/persona/name", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Name string }
		_ = json.NewDecoder(r.Body).Decode(&in)

		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.Header.Get("X-Client-ID")
		if b.nextIssue != "" {
			id, b.nextIssue = b.nextIssue, ""
		}
		b.names[id] = in.Name
		code := "RC-" + in.Name
		b.recovery[code] = id
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id, "recovery_code": code})
	})

	mux.HandleFunc("POST /api/persona/recover", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Code string }
		_ = json.NewDecoder(r.Body).Decode(&in)

		b.mu.Lock()
		defer b.mu.Unlock()
		id, ok := b.recovery[in.Code]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid recovery code"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "persona": "client", "name": b.names[id]})
	})

	get := func(w http.ResponseWriter, r *http.Request, key string, empty string) {
		b.mu.Lock()
		defer b.mu.Unlock()
		v, ok := b.blobs[r.Header.Get("X-Client-ID")+"|"+key]
		if !ok {
			v = json.RawMessage(empty)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(v)
	}
	save := func(w http.ResponseWriter, r *http.Request, key string) {
		data, _ := io.ReadAll(r.Body)
		if !json.Valid(data) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		b.mu.Lock()
		b.blobs[r.Header.Get("X-Client-ID")+"|"+key] = data
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}

	mux.HandleFunc("GET /api/kanban", func(w http.ResponseWriter, r *http.Request) {
		get(w, r, "KANBAN", `{"columns":[]}`)
	})
	mux.HandleFunc("POST /api/kanban", func(w http.ResponseWriter, r *http.Request) {
		save(w, r, "KANBAN")
	})
	mux.HandleFunc("GET /api/store/{key}", func(w http.ResponseWriter, r *http.Request) {
		get(w, r, r.PathValue("key"), "null")
	})
	mux.HandleFunc("POST /api/store/{key}", func(w http.ResponseWriter, r *http.Request) {
		save(w, r, r.PathValue("key"))
	})

	return mux
}

func (b *fakeBackend) blob(clientID, key string) json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blobs[clientID+"|"+key]
}
