// Package identity manages the per-installation client identifier and the
// persona exchanges the backend ties to it.
//
// The identifier lives in client-local storage under ClientIDKey. It is
// created lazily on first read and only ever replaced by SetClientID, which
// UpdateClientName and RecoverPersona call when the backend issues a new id.
//
// Only ClientID and SetClientID report errors. The persona calls absorb
// transport and status failures into their result values (or, for
// FetchPersona, into the anonymous persona) and log them.
package identity

import (
	"context"
	"net/http"

	"github.com/celerix-dev/flowclient/internal/client/client"
	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/celerix-dev/flowclient/internal/common"
	"github.com/celerix-dev/flowclient/internal/logging"
	"github.com/google/uuid"
)

// ClientIDKey is the local storage key holding the client identifier.
const ClientIDKey = "depot_client_id"

const networkError = "Network error"

// LocalStore is the slice of localstore.Repository the provider needs.
type LocalStore interface {
	Set(ctx context.Context, key string, value []byte) error
	GetOrInit(ctx context.Context, key string, initial func() []byte) ([]byte, error)
}

type AdminResult struct {
	Success bool
	Error   string
}

type NameResult struct {
	Success      bool
	ID           string
	RecoveryCode string
}

type RecoveryResult struct {
	Success bool
	Persona string
	Name    string
}

type Provider struct {
	local LocalStore
	api   client.Client
	log   logging.Logger
	newID func() string
}

func NewProvider(local LocalStore, api client.Client, log logging.Logger) *Provider {
	return &Provider{
		local: local,
		api:   api,
		log:   log.With("component", "identity"),
		newID: func() string { return uuid.NewString() },
	}
}

// ClientID returns the persisted identifier, generating and storing a new
// UUID when none (or an empty one) is stored.
func (p *Provider) ClientID(ctx context.Context) (string, error) {
	v, err := p.local.GetOrInit(ctx, ClientIDKey, func() []byte { return []byte(p.newID()) })
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		return string(v), nil
	}

	id := p.newID()
	if err := p.local.Set(ctx, ClientIDKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// SetClientID overwrites the stored identifier. The value is not validated.
func (p *Provider) SetClientID(ctx context.Context, id string) error {
	return p.local.Set(ctx, ClientIDKey, []byte(id))
}

// AdminSecret is what goes into X-Admin-Secret. The secret is used once by
// ActivateAdmin and never kept, so this is always empty.
func (p *Provider) AdminSecret() string {
	return ""
}

func (p *Provider) headers(ctx context.Context, withAdminSecret bool) (http.Header, error) {
	id, err := p.ClientID(ctx)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set(common.HeaderClientID, id)
	if withAdminSecret {
		h.Set(common.HeaderAdminSecret, p.AdminSecret())
	}
	return h, nil
}

// ActivateAdmin trades secret for admin rights on the current client id.
// A rejected secret yields the backend's error message.
func (p *Provider) ActivateAdmin(ctx context.Context, secret string) AdminResult {
	h, err := p.headers(ctx, false)
	if err != nil {
		p.log.Error(ctx, "error activating admin", "error", err)
		return AdminResult{Success: false, Error: err.Error()}
	}

	resp, err := p.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/api/persona/admin",
		Header: h,
		Body:   map[string]string{"secret": secret},
	})
	if err != nil {
		p.log.Error(ctx, "error activating admin", "error", err)
		return AdminResult{Success: false, Error: networkError}
	}
	if resp.OK() {
		return AdminResult{Success: true}
	}

	msg := resp.StatusText
	if se, ok := resp.Err().(*client.StatusError); ok && se.Message != "" {
		msg = se.Message
	}
	p.log.Warn(ctx, "admin activation rejected", "status", resp.StatusCode, "error", msg)
	return AdminResult{Success: false, Error: msg}
}

// FetchPersona returns the backend's persona for this client, or the
// anonymous persona on any failure.
func (p *Provider) FetchPersona(ctx context.Context) models.PersonaData {
	h, err := p.headers(ctx, true)
	if err != nil {
		p.log.Error(ctx, "error fetching persona", "error", err)
		return models.AnonymousPersona()
	}

	resp, err := p.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/api/persona", Header: h})
	if err != nil {
		p.log.Error(ctx, "error fetching persona", "error", err)
		return models.AnonymousPersona()
	}
	if !resp.OK() {
		p.log.Warn(ctx, "persona request failed", "status", resp.StatusCode)
		return models.AnonymousPersona()
	}

	var persona models.PersonaData
	if err := resp.DecodeJSON(&persona); err != nil {
		p.log.Error(ctx, "error decoding persona", "error", err)
		return models.AnonymousPersona()
	}
	return persona
}

// UpdateClientName renames the client. When the backend answers with a new
// id it is persisted before the result is returned; if that write fails
// the update is reported as unsuccessful.
func (p *Provider) UpdateClientName(ctx context.Context, name string) NameResult {
	h, err := p.headers(ctx, true)
	if err != nil {
		p.log.Error(ctx, "error updating client name", "error", err)
		return NameResult{}
	}

	resp, err := p.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/api/persona/name",
		Header: h,
		Body:   map[string]string{"name": name},
	})
	if err != nil {
		p.log.Error(ctx, "error updating client name", "error", err)
		return NameResult{}
	}
	if !resp.OK() {
		p.log.Warn(ctx, "client name update rejected", "status", resp.StatusCode)
		return NameResult{}
	}

	var data struct {
		ID           string `json:"id"`
		RecoveryCode string `json:"recovery_code"`
	}
	if err := resp.DecodeJSON(&data); err != nil {
		p.log.Error(ctx, "error decoding client name response", "error", err)
		return NameResult{}
	}

	if data.ID != "" {
		if err := p.SetClientID(ctx, data.ID); err != nil {
			p.log.Error(ctx, "error persisting reissued client id", "error", err)
			return NameResult{}
		}
	}

	return NameResult{Success: true, ID: data.ID, RecoveryCode: data.RecoveryCode}
}

// RecoverPersona exchanges a recovery code for the persona it belongs to
// and adopts that persona's client id. No client id is sent.
func (p *Provider) RecoverPersona(ctx context.Context, code string) RecoveryResult {
	resp, err := p.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/api/persona/recover",
		Body:   map[string]string{"code": code},
	})
	if err != nil {
		p.log.Error(ctx, "error recovering persona", "error", err)
		return RecoveryResult{}
	}
	if !resp.OK() {
		p.log.Warn(ctx, "persona recovery rejected", "status", resp.StatusCode)
		return RecoveryResult{}
	}

	var data struct {
		ID      string `json:"id"`
		Persona string `json:"persona"`
		Name    string `json:"name"`
	}
	if err := resp.DecodeJSON(&data); err != nil {
		p.log.Error(ctx, "error decoding recovery response", "error", err)
		return RecoveryResult{}
	}
	if data.ID == "" {
		p.log.Error(ctx, "recovery response carried no client id")
		return RecoveryResult{}
	}

	if err := p.SetClientID(ctx, data.ID); err != nil {
		p.log.Error(ctx, "error persisting recovered client id", "error", err)
		return RecoveryResult{}
	}

	return RecoveryResult{Success: true, Persona: data.Persona, Name: data.Name}
}
