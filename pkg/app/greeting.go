package app

import "time"

// Greeting welcomes the user by the time of day.
func Greeting(now time.Time, name string) string {
	var part string
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		part = "Good morning"
	case h >= 12 && h < 17:
		part = "Good afternoon"
	case h >= 17 && h < 21:
		part = "Good evening"
	default:
		part = "Good night"
	}
	if name == "" {
		return part
	}
	return part + ", " + name
}

// Greeting welcomes the configured user at the service's current time.
func (s *Service) Greeting() string {
	name := ""
	if s.Settings != nil {
		name = s.Settings.Current().Name
	}
	return Greeting(s.now(), name)
}
