package models

// DefaultNickname is shown whenever no nickname has been chosen.
const DefaultNickname = "Celerix Pilot"

// UserPreferences is the blob persisted under the USER key.
type UserPreferences struct {
	Nickname        string  `json:"nickname"`
	ActiveProjectID *string `json:"activeProjectId"`
	Theme           Theme   `json:"theme"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{Nickname: DefaultNickname, Theme: ThemeAuto}
}

// Normalized fills every missing or invalid field with its default.
func (p UserPreferences) Normalized() UserPreferences {
	if p.Nickname == "" {
		p.Nickname = DefaultNickname
	}
	if p.ActiveProjectID != nil && *p.ActiveProjectID == "" {
		p.ActiveProjectID = nil
	}
	if !p.Theme.Valid() {
		p.Theme = ThemeAuto
	}
	return p
}
