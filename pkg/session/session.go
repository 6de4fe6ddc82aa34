// Package session names and describes a single writing session.
package session

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Extension is appended to every session filename.
	Extension = ".html"
	// TempSuffix marks in-progress atomic writes next to a session file.
	TempSuffix = ".tmp"
)

var months = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Session is one persisted writing document.
type Session struct {
	Filename   string    `json:"filename"`
	Content    string    `json:"content,omitempty"`
	ModifiedAt time.Time `json:"modified,omitempty"`
}

// New starts an empty session named after now.
func New(now time.Time) *Session {
	return &Session{Filename: GenerateFilename(now)}
}

// DisplayName is the filename without its extension.
func (s *Session) DisplayName() string {
	return DisplayName(s.Filename)
}

// GenerateFilename renders now as a human readable session filename, for
// example "On 21st of Mar, 2024, 2-05 pm.html".
//
// Names have minute granularity. Two sessions started within the same clock
// minute get the same name, and the later one overwrites the earlier on save.
func GenerateFilename(now time.Time) string {
	day := now.Day()
	hour := now.Hour()
	ampm := "am"
	if hour >= 12 {
		ampm = "pm"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("On %d%s of %s, %d, %d-%02d %s%s",
		day, OrdinalSuffix(day), months[now.Month()-1], now.Year(), hour, now.Minute(), ampm, Extension)
}

// OrdinalSuffix returns st, nd, rd or th for a day of the month.
func OrdinalSuffix(day int) string {
	switch {
	case day%10 == 1 && day != 11:
		return "st"
	case day%10 == 2 && day != 12:
		return "nd"
	case day%10 == 3 && day != 13:
		return "rd"
	default:
		return "th"
	}
}

// DisplayName strips the session extension from filename.
func DisplayName(filename string) string {
	return strings.TrimSuffix(filename, Extension)
}

// IsTemp reports whether name is an atomic write leftover.
func IsTemp(name string) bool {
	return strings.HasSuffix(name, TempSuffix)
}

// IsSessionFile reports whether name looks like a saved session.
func IsSessionFile(name string) bool {
	if IsTemp(name) || strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(name, Extension) && len(name) > len(Extension)
}

// FilenameFor accepts either a filename or a display name and returns the
// filename.
func FilenameFor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}
