package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/settings"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2024, 3, 21, 14, 5, 0, 0, time.Local)

func TestSessions(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Now: func() time.Time { return now }}
	pp.Sessions([]app.SessionInfo{
		{Filename: "b.html", DisplayName: "b", Modified: now.Add(-2 * time.Hour)},
		{Filename: "a.html", DisplayName: "a", Modified: now.Add(-30 * time.Second)},
	})

	out := buf.String()
	assert.Contains(t, out, "Sessions - 2 sessions")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "just now")
	assert.Less(t, strings.Index(out, "b "), strings.Index(out, "a "))
}

func TestSessionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Sessions(nil)
	assert.Contains(t, buf.String(), "Sessions - 0 sessions")
	assert.Contains(t, buf.String(), "none")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Text("Title", "one two three four five", 9)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Title", lines[0])
	for _, l := range lines[2:] {
		assert.LessOrEqual(t, len(l), 9, l)
	}
}

func TestSettings(t *testing.T) {
	var buf bytes.Buffer
	rec := settings.Defaults()
	(&PrettyPrint{Out: &buf}).Settings(rec)
	out := buf.String()
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "midnight")
	assert.NotContains(t, out, "custom")

	buf.Reset()
	rec.Name = "Ada"
	rec.Theme = settings.ThemeCustom
	(&PrettyPrint{Out: &buf}).Settings(rec)
	assert.Contains(t, buf.String(), "Ada")
	assert.Contains(t, buf.String(), "Georgia 20px")
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Report(app.ReportResult{
		Since: now.AddDate(0, 0, -7),
		Until: now,
		Total: 1,
		Words: 3,
		Sections: []app.ReportSection{{
			Day:      "2024-03-21",
			Words:    3,
			Sessions: []app.ReportItem{{DisplayName: "morning pages", Words: 3}},
		}},
	}, "last 1w")
	out := buf.String()
	assert.Contains(t, out, "Writing · last 1w (")
	assert.Contains(t, out, "2024-03-21 - 3 words")
	assert.Contains(t, out, "morning pages")
	assert.Contains(t, out, "1 session, 3 words")
}

func TestAgo(t *testing.T) {
	assert.Equal(t, "1 minute ago", Ago(now, now.Add(-90*time.Second)))
	assert.Equal(t, "1 day ago", Ago(now, now.Add(-25*time.Hour)))
	assert.Equal(t, "Mar 1, 2024", Ago(now, time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)))
}

func TestCalendar(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	sessions := []app.SessionInfo{
		{Modified: time.Date(2024, 3, 21, 9, 0, 0, 0, time.Local)},
		{Modified: time.Date(2024, 3, 21, 19, 0, 0, 0, time.Local)},
		{Modified: time.Date(2024, 4, 2, 9, 0, 0, 0, time.Local)},
	}
	count := CountByDay(march, sessions)
	require.Len(t, count, 31)
	assert.Equal(t, 2, count[20])
	assert.Equal(t, 0, count[1])

	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Calendar(march, sessions...)
	out := buf.String()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "31")

	assert.Equal(t, 29, DaysIn(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Friday, StartDay(march))
	assert.Equal(t, time.April, NextMonth(time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)).Month())
}
