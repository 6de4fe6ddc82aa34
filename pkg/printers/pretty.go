package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/settings"
)

// DefaultWidth is the wrap width when the terminal size is unknown.
const DefaultWidth = 80

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Now is used for relative times.
	Now func() time.Time
}

// Writer is the destination output is printed to.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " session")
	default:
		_, _ = c.Fprintln(pp.out(), " sessions")
	}
}

func (pp *PrettyPrint) None() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Sessions prints the catalog, newest first, as a table.
func (pp *PrettyPrint) Sessions(sessions []app.SessionInfo) {
	pp.TitleWithCount("Sessions", len(sessions))
	if len(sessions) == 0 {
		pp.None()
		return
	}

	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, s := range sessions {
		tbl.AddRow(s.DisplayName, faint.Sprint(Ago(pp.now(), s.Modified)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Text prints plain session text wrapped to width.
func (pp *PrettyPrint) Text(title, text string, width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	pp.Title(title)
	pp.NewLine()
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(text, width))
}

// Settings prints the settings record as a key/value table.
func (pp *PrettyPrint) Settings(rec settings.Record) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint, color.Italic)

	name := rec.Name
	if name == "" {
		name = faint.Sprint("(not set)")
	}
	last := rec.LastSessionFile
	if last == "" {
		last = faint.Sprint("(none)")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("name"), name)
	tbl.AddRow(bold.Sprint("theme"), rec.Theme)
	if rec.Theme == settings.ThemeCustom {
		ct := rec.CustomTheme
		tbl.AddRow(bold.Sprint("custom"), fmt.Sprintf("%s %dpx, %s on %s", ct.FontFamily, ct.FontSize, ct.TextColor, ct.BgColor))
	}
	tbl.AddRow(bold.Sprint("fade"), fmt.Sprintf("%t", rec.FadeEffect))
	tbl.AddRow(bold.Sprint("last session"), last)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints sessions grouped by day with word counts.
func (pp *PrettyPrint) Report(r app.ReportResult, label string) {
	faint := color.New(color.Faint)
	span := fmt.Sprintf("%s to %s", r.Since.Local().Format(time.DateOnly), r.Until.Local().Format(time.DateOnly))
	if label != "" {
		span = fmt.Sprintf("%s (%s)", label, span)
	}
	pp.Title("Writing · " + span)
	if r.Total == 0 {
		pp.None()
		return
	}
	for _, sec := range r.Sections {
		_, _ = color.New(color.Bold).Fprintf(pp.out(), "\n%s", sec.Day)
		_, _ = faint.Fprintf(pp.out(), " - %s\n", plural(sec.Words, "word"))
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, item := range sec.Sessions {
			tbl.AddRow("  "+item.DisplayName, faint.Sprint(plural(item.Words, "word")))
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
	}
	pp.NewLine()
	_, _ = faint.Fprintf(pp.out(), "%s, %s\n", plural(r.Total, "session"), plural(r.Words, "word"))
}

// Ago renders t relative to now at a coarse granularity.
func Ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return t.Local().Format("Jan 2, 2006 3:04 pm")
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s", n, strings.TrimSuffix(noun, "s")+"s")
}
