package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/layout"
	"github.com/Adda-Baaj/newsdesk/internal/session"
)

const (
	markSaved   = "★"
	markUnsaved = "☆"
)

// Palette is the set of styles for one theme.
type Palette struct {
	Heading lipgloss.Style
	Active  lipgloss.Style
	Muted   lipgloss.Style
	Title   lipgloss.Style
	Main    lipgloss.Style
	Link    lipgloss.Style
	Error   lipgloss.Style
	Mark    lipgloss.Style
	Box     lipgloss.Style
}

func newPalette(r *lipgloss.Renderer, dark bool) Palette {
	fg, muted, accent, link, errc, border := "235", "243", "25", "31", "160", "250"
	if dark {
		fg, muted, accent, link, errc, border = "252", "245", "75", "117", "203", "238"
	}
	return Palette{
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Active:  r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(accent)),
		Muted:   r.NewStyle().Foreground(lipgloss.Color(muted)),
		Title:   r.NewStyle().Foreground(lipgloss.Color(fg)),
		Main:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(fg)),
		Link:    r.NewStyle().Foreground(lipgloss.Color(link)),
		Error:   r.NewStyle().Foreground(lipgloss.Color(errc)),
		Mark:    r.NewStyle().Foreground(lipgloss.Color("214")),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),
	}
}

// DetectDark reports whether the terminal behind out has a dark background.
func DetectDark(out io.Writer) bool {
	return termenv.NewOutput(out).HasDarkBackground()
}

// BookmarkChecker answers whether a URL is bookmarked.
type BookmarkChecker func(url string) bool

// Renderer writes session views to a terminal.
type Renderer struct {
	out   io.Writer
	r     *lipgloss.Renderer
	loc   *time.Location
	light Palette
	dark  Palette
}

// New builds a Renderer for out. Dates are shown in loc.
func New(out io.Writer, loc *time.Location) *Renderer {
	r := lipgloss.NewRenderer(out)
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		out:   out,
		r:     r,
		loc:   loc,
		light: newPalette(r, false),
		dark:  newPalette(r, true),
	}
}

// NewPlain builds a Renderer that never emits colour codes.
func NewPlain(out io.Writer, loc *time.Location) *Renderer {
	rd := New(out, loc)
	rd.r.SetColorProfile(termenv.Ascii)
	rd.light = newPalette(rd.r, false)
	rd.dark = newPalette(rd.r, true)
	return rd
}

func (rd *Renderer) palette(dark bool) Palette {
	if dark {
		return rd.dark
	}
	return rd.light
}

// Headlines renders the category bar and the article layout for st.
func (rd *Renderer) Headlines(st session.State, saved BookmarkChecker) {
	p := rd.palette(st.DarkMode)
	var b strings.Builder

	b.WriteString(rd.categoryBar(st, p))
	b.WriteString("\n\n")

	switch {
	case st.Query != "":
		b.WriteString(p.Heading.Render(fmt.Sprintf("Search: %s", st.Query)))
	default:
		if cat, err := domain.LookupCategory(st.Category); err == nil {
			b.WriteString(p.Heading.Render(cat.Label))
		}
	}
	b.WriteString("\n")

	if st.Loading {
		b.WriteString(p.Muted.Render("Loading..."))
		b.WriteString("\n")
		fmt.Fprint(rd.out, b.String())
		return
	}
	if st.LastErr != nil {
		b.WriteString(p.Error.Render("Could not load articles. Try again later."))
		b.WriteString("\n")
	}

	l := layout.Partition(st.Articles)
	if l.Main == nil {
		b.WriteString(p.Muted.Render("No articles."))
		b.WriteString("\n")
		fmt.Fprint(rd.out, b.String())
		return
	}

	pos := 1
	main := *l.Main
	mainBody := fmt.Sprintf("%s %s %s\n%s\n%s",
		p.Muted.Render(fmt.Sprintf("[%d]", pos)),
		rd.mark(p, saved, main.URL),
		p.Main.Render(main.Title),
		p.Muted.Render(layout.ImageOrFallback(main)),
		p.Muted.Render(layout.FormatDate(main.PublishedAt, rd.loc)),
	)
	b.WriteString(p.Box.Render(mainBody))
	b.WriteString("\n")
	pos++

	for _, a := range l.Small {
		fmt.Fprintf(&b, "%s %s %s  %s\n",
			p.Muted.Render(fmt.Sprintf("[%d]", pos)),
			rd.mark(p, saved, a.URL),
			p.Title.Render(layout.TrimText(a.Title, layout.SmallTitleMax)),
			p.Muted.Render(layout.FormatDate(a.PublishedAt, rd.loc)),
		)
		pos++
	}

	if len(l.More) > 0 {
		b.WriteString("\n")
		b.WriteString(p.Heading.Render("More articles"))
		b.WriteString("\n")
	}
	for _, a := range l.More {
		fmt.Fprintf(&b, "%s %s %s  %s\n    %s\n",
			p.Muted.Render(fmt.Sprintf("[%d]", pos)),
			rd.mark(p, saved, a.URL),
			p.Title.Render(layout.TrimText(a.Title, layout.MoreTitleMax)),
			p.Muted.Render(layout.FormatDate(a.PublishedAt, rd.loc)),
			p.Muted.Render(layout.TrimText(domain.Deref(a.Description), layout.MoreDescriptionMax)),
		)
		pos++
	}

	fmt.Fprint(rd.out, b.String())
}

// Detail renders the selected article, if any.
func (rd *Renderer) Detail(st session.State) {
	if st.Selected == nil {
		return
	}
	p := rd.palette(st.DarkMode)
	a := *st.Selected

	body := strings.Join([]string{
		p.Main.Render(a.Title),
		p.Muted.Render(layout.ImageOrFallback(a)),
		"",
		p.Title.Render(layout.DescriptionOrFallback(a)),
		"",
		p.Muted.Render(layout.FormatDate(a.PublishedAt, rd.loc)),
		p.Link.Render("Read full article: " + a.URL),
	}, "\n")

	fmt.Fprintln(rd.out, p.Box.Render(body))
}

// Bookmarks renders the bookmark list in insertion order.
func (rd *Renderer) Bookmarks(items []domain.Article, dark bool) {
	p := rd.palette(dark)
	var b strings.Builder

	b.WriteString(p.Heading.Render("Bookmarks"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(p.Muted.Render("No bookmarks yet."))
		b.WriteString("\n")
	}
	for i, a := range items {
		fmt.Fprintf(&b, "%s %s %s\n    %s\n",
			p.Muted.Render(fmt.Sprintf("[%d]", i+1)),
			p.Mark.Render(markSaved),
			p.Title.Render(a.Title),
			p.Link.Render(a.URL),
		)
	}
	fmt.Fprint(rd.out, b.String())
}

// Status prints a one-line message.
func (rd *Renderer) Status(dark bool, format string, args ...any) {
	p := rd.palette(dark)
	fmt.Fprintln(rd.out, p.Muted.Render(fmt.Sprintf(format, args...)))
}

func (rd *Renderer) categoryBar(st session.State, p Palette) string {
	cats := domain.Categories()
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		if st.Query == "" && c.Key == st.Category {
			parts = append(parts, p.Active.Render(c.Label))
			continue
		}
		parts = append(parts, p.Muted.Render(c.Label))
	}
	return strings.Join(parts, p.Muted.Render(" | "))
}

func (rd *Renderer) mark(p Palette, saved BookmarkChecker, url string) string {
	if saved != nil && saved(url) {
		return p.Mark.Render(markSaved)
	}
	return p.Muted.Render(markUnsaved)
}
