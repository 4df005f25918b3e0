// Package theme paints the light/dark theme onto a Document and keeps it in
// step with the environment's color-scheme preference.
//
// Two things follow the preference: the applied theme, but only while the
// user has chosen auto, and the contrast filter on reactive elements, which
// always tracks the live preference even under a manual theme.
package theme

import (
	"fmt"
	"sync"
	"time"

	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/celerix-dev/flowclient/internal/logging"
)

const (
	AttrTheme       = "data-bs-theme"
	AttrThemeSource = "data-theme-source"
	AttrVariant     = "data-variant"

	SourceAuto   = "auto"
	SourceManual = "manual"

	VariantImageLightDark = "image-light-dark"
	ClassReactLightDark   = "react-light-dark"

	FilterDark  = "brightness(0.7) contrast(1.1)"
	FilterLight = "brightness(1) contrast(1)"
)

// Season buckets the month into one of the four scene sets.
func Season(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "valley"
	case m >= time.June && m <= time.August:
		return "tropical"
	case m >= time.September && m <= time.November:
		return "forest"
	default:
		return "snow"
	}
}

// SceneImage is the image path for a season under an effective theme.
func SceneImage(season string, effective models.Theme) string {
	suffix := "night"
	if effective == models.ThemeLight {
		suffix = "day"
	}
	return fmt.Sprintf("/assets/scenes/%s-%s.png", season, suffix)
}

type Presenter struct {
	doc    Document
	scheme SchemeSource
	log    logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	unsubs []func()
}

type Option func(*Presenter)

// WithClock replaces time.Now for season selection.
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) { p.now = now }
}

func NewPresenter(doc Document, scheme SchemeSource, log logging.Logger, opts ...Option) *Presenter {
	p := &Presenter{
		doc:    doc,
		scheme: scheme,
		log:    log.With("component", "theme"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init subscribes to scheme changes. Calling it again is a no-op.
func (p *Presenter) Init() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubs != nil {
		return
	}

	p.unsubs = []func(){
		p.scheme.Subscribe(p.onSchemeChange),
		// Filters follow the environment regardless of the applied theme.
		p.scheme.Subscribe(func(bool) {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.updateFilters()
		}),
	}
}

// Close removes the subscriptions made by Init.
func (p *Presenter) Close() {
	p.mu.Lock()
	unsubs := p.unsubs
	p.unsubs = nil
	p.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

func (p *Presenter) onSchemeChange(bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	root := p.doc.Root()
	_, hasTheme := root.Attr(AttrTheme)
	source, hasSource := root.Attr(AttrThemeSource)
	if hasTheme && hasSource && source != SourceAuto {
		return
	}
	p.applyTheme(models.ThemeAuto)
}

// ApplyTheme resolves t to light or dark, records whether that came from
// the environment or the user, and refreshes dependent elements.
func (p *Presenter) ApplyTheme(t models.Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyTheme(t)
}

func (p *Presenter) applyTheme(t models.Theme) {
	root := p.doc.Root()

	effective := t
	if t == models.ThemeAuto || !t.Valid() {
		effective = models.ThemeLight
		if p.scheme.PrefersDark() {
			effective = models.ThemeDark
		}
		root.SetAttr(AttrThemeSource, SourceAuto)
	} else {
		root.SetAttr(AttrThemeSource, SourceManual)
	}

	root.SetAttr(AttrTheme, string(effective))
	p.updateTheme()
}

// UpdateTheme refreshes scene images and filters without changing the
// applied theme.
func (p *Presenter) UpdateTheme() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateTheme()
}

func (p *Presenter) updateTheme() {
	p.updateScenes()
	p.updateFilters()
}

func (p *Presenter) updateScenes() {
	effective, _ := p.doc.Root().Attr(AttrTheme)
	src := SceneImage(Season(p.now().Month()), models.Theme(effective))
	for _, el := range p.doc.QueryAttr(AttrVariant, VariantImageLightDark) {
		el.SetAttr("src", src)
	}
}

func (p *Presenter) updateFilters() {
	filter := FilterLight
	if p.scheme.PrefersDark() {
		filter = FilterDark
	}
	for _, el := range p.doc.QueryClass(ClassReactLightDark) {
		el.SetStyle("filter", filter)
	}
}

// Scheme returns the effective theme, or "" before anything was applied.
func (p *Presenter) Scheme() models.Theme {
	v, _ := p.doc.Root().Attr(AttrTheme)
	return models.Theme(v)
}

// Source returns "auto", "manual", or "" before anything was applied.
func (p *Presenter) Source() string {
	v, _ := p.doc.Root().Attr(AttrThemeSource)
	return v
}
