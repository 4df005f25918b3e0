package services

import (
	"context"
	"sync"

	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/celerix-dev/flowclient/internal/client/storage"
	"github.com/celerix-dev/flowclient/internal/common"
	"github.com/celerix-dev/flowclient/internal/logging"
)

// ThemeApplier paints a theme. *theme.Presenter implements it.
type ThemeApplier interface {
	ApplyTheme(t models.Theme)
}

// UserStore holds the current user's preferences.
//
// Nothing is persisted until LoadUser has run, so defaults built at startup
// never overwrite what the backend already has. Persistence failures in the
// setters are logged and otherwise ignored.
type UserStore struct {
	store BlobStore
	theme ThemeApplier
	log   logging.Logger

	mu          sync.RWMutex
	prefs       models.UserPreferences
	initialized bool
}

func NewUserStore(store BlobStore, theme ThemeApplier, log logging.Logger) *UserStore {
	return &UserStore{
		store: store,
		theme: theme,
		log:   log.With("component", "user"),
		prefs: models.DefaultPreferences(),
	}
}

// LoadUser hydrates the store from the USER blob. Missing fields, a missing
// blob and load failures all fall back to defaults. The resolved theme is
// applied and the store marked initialized in every case.
func (u *UserStore) LoadUser(ctx context.Context) {
	prefs := models.DefaultPreferences()

	loaded, err := storage.LoadAs[models.UserPreferences](ctx, u.store, common.KeyUser)
	switch {
	case err != nil:
		u.log.Error(ctx, "failed to load user preferences", "error", err)
	case loaded != nil:
		prefs = loaded.Normalized()
	}

	u.mu.Lock()
	u.prefs = prefs
	u.mu.Unlock()

	u.theme.ApplyTheme(prefs.Theme)

	u.mu.Lock()
	u.initialized = true
	u.mu.Unlock()
}

func (u *UserStore) SetNickname(ctx context.Context, nickname string) {
	u.update(ctx, func(p *models.UserPreferences) { p.Nickname = nickname })
}

// SetActiveProject selects a project. An empty id clears the selection.
func (u *UserStore) SetActiveProject(ctx context.Context, id string) {
	u.update(ctx, func(p *models.UserPreferences) {
		if id == "" {
			p.ActiveProjectID = nil
			return
		}
		p.ActiveProjectID = &id
	})
}

// SetTheme applies t and then persists it.
func (u *UserStore) SetTheme(ctx context.Context, t models.Theme) error {
	if !t.Valid() {
		return models.ErrInvalidTheme
	}
	u.mu.Lock()
	u.prefs.Theme = t
	u.mu.Unlock()

	u.theme.ApplyTheme(t)
	u.persist(ctx)
	return nil
}

func (u *UserStore) update(ctx context.Context, fn func(p *models.UserPreferences)) {
	u.mu.Lock()
	fn(&u.prefs)
	u.mu.Unlock()

	u.persist(ctx)
}

func (u *UserStore) persist(ctx context.Context) {
	u.mu.RLock()
	if !u.initialized {
		u.mu.RUnlock()
		u.log.Debug(ctx, "skipping persistence before load")
		return
	}
	snapshot := u.snapshot()
	u.mu.RUnlock()

	if err := u.store.Save(ctx, common.KeyUser, snapshot); err != nil {
		u.log.Error(ctx, "failed to save user preferences", "error", err)
	}
}

// snapshot copies prefs. Callers hold mu.
func (u *UserStore) snapshot() models.UserPreferences {
	p := u.prefs
	if p.ActiveProjectID != nil {
		id := *p.ActiveProjectID
		p.ActiveProjectID = &id
	}
	return p
}

func (u *UserStore) Preferences() models.UserPreferences {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.snapshot()
}

// DisplayName is the nickname, or the placeholder when it is empty.
func (u *UserStore) DisplayName() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.prefs.Nickname == "" {
		return models.DefaultNickname
	}
	return u.prefs.Nickname
}

func (u *UserStore) IsInitialized() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.initialized
}
