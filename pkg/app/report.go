package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/kammi/pkg/document"
)

// ReportItem is one session written inside the report window.
type ReportItem struct {
	Filename    string    `json:"filename"`
	DisplayName string    `json:"displayName"`
	Modified    time.Time `json:"modified"`
	Words       int       `json:"words"`
}

// ReportSection groups sessions by the local day they were last modified.
type ReportSection struct {
	Day      string       `json:"day"`
	Sessions []ReportItem `json:"sessions"`
	Words    int          `json:"words"`
}

// ReportResult summarizes the writing done in a time window.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
	Words    int             `json:"words"`
}

// Report lists the sessions modified between since and until, grouped by day
// with word counts. Sessions that cannot be read count as zero words.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	if err := s.ready(); err != nil {
		return ReportResult{}, err
	}
	if s.Catalog == nil {
		return ReportResult{}, errNoCatalog
	}
	entries, err := s.Catalog.List(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	grouped := make(map[string][]ReportItem)
	result := ReportResult{Since: since, Until: until}
	for _, e := range entries {
		if e.Modified.Before(since) || e.Modified.After(until) {
			continue
		}
		item := ReportItem{
			Filename:    e.Filename,
			DisplayName: e.DisplayName,
			Modified:    e.Modified,
		}
		if data, err := s.Gateway.ReadFile(e.Filename); err == nil {
			item.Words = document.WordCount(string(data))
		} else {
			s.logger().Printf("app: report: %v", err)
		}
		day := e.Modified.Local().Format(time.DateOnly)
		grouped[day] = append(grouped[day], item)
		result.Total++
		result.Words += item.Words
	}
	if len(grouped) == 0 {
		return result, nil
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	// Newest day first, matching the catalog order within each day.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	result.Sections = make([]ReportSection, 0, len(days))
	for _, day := range days {
		section := ReportSection{Day: day, Sessions: grouped[day]}
		for _, item := range section.Sessions {
			section.Words += item.Words
		}
		result.Sections = append(result.Sections, section)
	}
	return result, nil
}
