// Package settings owns the single persisted configuration record and
// serializes every mutation of it.
package settings

import (
	"encoding/json"
)

const (
	// ThemeCustom selects Record.CustomTheme instead of a preset.
	ThemeCustom = "custom"
	// DefaultTheme is the preset used until the user picks one.
	DefaultTheme = "midnight"
)

// Theme is a bundle of appearance attributes.
type Theme struct {
	FontFamily string `json:"fontFamily" yaml:"fontFamily"`
	FontSize   int    `json:"fontSize" yaml:"fontSize"`
	BgColor    string `json:"bgColor" yaml:"bgColor"`
	TextColor  string `json:"textColor" yaml:"textColor"`
}

// Record is the whole settings document. It is always read and written in
// full.
type Record struct {
	// Name is empty until onboarding completes.
	Name        string `json:"name" yaml:"name"`
	Theme       string `json:"theme" yaml:"theme"`
	CustomTheme Theme  `json:"customTheme" yaml:"customTheme"`
	SavedTheme  *Theme `json:"savedTheme,omitempty" yaml:"savedTheme,omitempty"`
	// LastSessionFile is advisory; the file it names may be gone.
	LastSessionFile string `json:"lastSessionFile,omitempty" yaml:"lastSessionFile,omitempty"`
	FadeEffect      bool   `json:"fadeEffect" yaml:"fadeEffect"`
}

// DefaultCustomTheme seeds CustomTheme on first launch.
func DefaultCustomTheme() Theme {
	return Theme{
		FontFamily: "Georgia",
		FontSize:   20,
		BgColor:    "#1a1a1a",
		TextColor:  "#c4b69c",
	}
}

// Defaults is the record used on first launch.
func Defaults() Record {
	return Record{
		Theme:       DefaultTheme,
		CustomTheme: DefaultCustomTheme(),
		FadeEffect:  true,
	}
}

// IsFirstLaunch reports whether onboarding has not happened yet.
func (r Record) IsFirstLaunch() bool {
	return r.Name == ""
}

// Equal compares two records field by field.
func (r Record) Equal(o Record) bool {
	if (r.SavedTheme == nil) != (o.SavedTheme == nil) {
		return false
	}
	if r.SavedTheme != nil && *r.SavedTheme != *o.SavedTheme {
		return false
	}
	return r.Name == o.Name &&
		r.Theme == o.Theme &&
		r.CustomTheme == o.CustomTheme &&
		r.LastSessionFile == o.LastSessionFile &&
		r.FadeEffect == o.FadeEffect
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	if r.SavedTheme != nil {
		saved := *r.SavedTheme
		r.SavedTheme = &saved
	}
	return r
}

// UnmarshalJSON applies defaults for optional fields missing from data.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var raw struct {
		plain
		Theme           *string `json:"theme"`
		CustomTheme     *Theme  `json:"customTheme"`
		LastSessionFile *string `json:"lastSessionFile"`
		FadeEffect      *bool   `json:"fadeEffect"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Defaults()
	out.Name = raw.Name
	out.SavedTheme = raw.SavedTheme
	if raw.Theme != nil && *raw.Theme != "" {
		out.Theme = *raw.Theme
	}
	if raw.CustomTheme != nil {
		out.CustomTheme = *raw.CustomTheme
	}
	if raw.LastSessionFile != nil {
		out.LastSessionFile = *raw.LastSessionFile
	}
	if raw.FadeEffect != nil {
		out.FadeEffect = *raw.FadeEffect
	}
	*r = out
	return nil
}
