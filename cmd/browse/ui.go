package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"cinefind/errs"
	"cinefind/movie"
	"cinefind/trending"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	modeList = iota
	modeDetails
	modeTrending
)

const (
	castShown    = 5
	youtubeWatch = "https://www.youtube.com/watch?v="
)

// browser is the part of movie.Session the UI drives.
type browser interface {
	Type(raw string)
	NextPage() bool
	PrevPage() bool
	ApplyFilters(f movie.Filters) error
	ClearFilters()
	Open(ctx context.Context, m movie.Movie) (movie.Details, error)
	Snapshot() movie.View
}

type topLister interface {
	Top(ctx context.Context) []trending.Entry
}

type (
	// changedMsg tells the model to re-read the session snapshot.
	changedMsg struct{}

	detailsMsg struct {
		details movie.Details
		err     error
	}

	genresMsg []movie.Genre

	trendingMsg []trending.Entry
)

type model struct {
	ctx      context.Context
	session  browser
	trending topLister
	genres   func(ctx context.Context) []movie.Genre
	changed  <-chan struct{}
	keys     keyMap
	now      func() time.Time

	mode      int
	input     textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	paginator paginator.Model

	view     movie.View
	filters  movie.Filters
	genreIDs []int
	names    map[int]string
	selected int
	top      []trending.Entry
	details  *movie.Details
	err      error
	width    int
}

func newModel(ctx context.Context, s browser, t topLister, genres func(context.Context) []movie.Genre, changed <-chan struct{}) model {
	ti := textinput.New()
	ti.Placeholder = "Cerca un film..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	vp := viewport.New(80, 20)

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.PerPage = 1
	pg.SetTotalPages(1)

	return model{
		ctx:       ctx,
		session:   s,
		trending:  t,
		genres:    genres,
		changed:   changed,
		keys:      defaultKeyMap(),
		now:       time.Now,
		input:     ti,
		spinner:   sp,
		viewport:  vp,
		paginator: pg,
		filters:   movie.DefaultFilters(),
		names:     map[int]string{},
		width:     80,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForChange(m.changed),
		m.loadGenres(),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m model) loadGenres() tea.Cmd {
	if m.genres == nil {
		return nil
	}
	return func() tea.Msg {
		return genresMsg(m.genres(m.ctx))
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeDetails:
			return m.updateDetails(msg)
		case modeTrending:
			if key.Matches(msg, m.keys.Back, m.keys.Trending) {
				m.mode = modeList
			}
			return m, nil
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-6, 5)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case changedMsg:
		m.refresh()
		cmds = append(cmds, waitForChange(m.changed))

	case genresMsg:
		m.genreIDs = m.genreIDs[:0]
		for _, g := range msg {
			m.genreIDs = append(m.genreIDs, g.ID)
			m.names[g.ID] = g.Name
		}

	case detailsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.mode = modeList
			break
		}
		m.err = nil
		m.details = &msg.details
		m.viewport.SetContent(formatDetails(msg.details, m.names))
		m.viewport.GotoTop()
		m.mode = modeDetails

	case trendingMsg:
		m.top = msg
		m.mode = modeTrending
	}

	return m, tea.Batch(cmds...)
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	movies := m.view.State.Movies

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(movies)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if m.selected >= len(movies) {
			return m, nil
		}
		return m, m.open(movies[m.selected])
	case key.Matches(msg, m.keys.NextPage):
		m.session.NextPage()
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.session.PrevPage()
		return m, nil
	case key.Matches(msg, m.keys.Genre):
		return m.applyFilters(func(f *movie.Filters) {
			current := 0
			if len(f.Genres) > 0 {
				current = f.Genres[0]
			}
			next := cycle(append([]int{0}, m.genreIDs...), current)
			f.Genres = nil
			if next != 0 {
				f.Genres = []int{next}
			}
		})
	case key.Matches(msg, m.keys.Year):
		return m.applyFilters(func(f *movie.Filters) {
			f.Year = cycle(append([]string{""}, movie.YearOptions(m.now())...), f.Year)
		})
	case key.Matches(msg, m.keys.Rating):
		return m.applyFilters(func(f *movie.Filters) {
			f.MinRating = cycle(append([]string{""}, movie.RatingThresholds...), f.MinRating)
		})
	case key.Matches(msg, m.keys.Language):
		return m.applyFilters(func(f *movie.Filters) {
			f.Language = cycle(optionValues(movie.LanguageOptions), f.Language)
		})
	case key.Matches(msg, m.keys.Sort):
		return m.applyFilters(func(f *movie.Filters) {
			f.SortBy = cycle(optionValues(movie.SortOptions), f.SortBy)
		})
	case key.Matches(msg, m.keys.ClearFilters):
		m.filters = movie.DefaultFilters()
		m.selected = 0
		m.session.ClearFilters()
		return m, nil
	case key.Matches(msg, m.keys.Trending):
		return m, m.loadTrending()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.session.Type(after)
	}
	return m, cmd
}

func (m model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.mode = modeList
		m.details = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) applyFilters(change func(f *movie.Filters)) (tea.Model, tea.Cmd) {
	f := m.filters
	f.Genres = slices.Clone(f.Genres)
	change(&f)
	if err := m.session.ApplyFilters(f); err != nil {
		m.err = err
		return m, nil
	}
	m.filters = f.Normalize()
	m.selected = 0
	m.err = nil
	return m, nil
}

func (m model) open(mv movie.Movie) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		d, err := s.Open(ctx, mv)
		return detailsMsg{details: d, err: err}
	}
}

func (m model) loadTrending() tea.Cmd {
	if m.trending == nil {
		return func() tea.Msg { return trendingMsg(nil) }
	}
	ctx, t := m.ctx, m.trending
	return func() tea.Msg {
		return trendingMsg(t.Top(ctx))
	}
}

func (m *model) refresh() {
	m.view = m.session.Snapshot()
	if n := len(m.view.State.Movies); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	m.paginator.SetTotalPages(max(m.view.TotalPages, 1))
	m.paginator.Page = max(m.view.Page-1, 0)
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("🎬 CineFind"))
	sb.WriteString("\n")

	switch m.mode {
	case modeDetails:
		sb.WriteString(detailsStyle.Render(m.viewport.View()))
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("esc indietro • ↑/↓ scorri • ^c esci"))
		return sb.String()
	case modeTrending:
		sb.WriteString(formatTrending(m.top))
		sb.WriteString(helpStyle.Render("esc indietro • ^c esci"))
		return sb.String()
	}

	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(filterStyle.Render(describeFilters(m.filters, m.names)))
	sb.WriteString("\n")
	if m.view.Advisory != "" {
		sb.WriteString(advisoryStyle.Render(m.view.Advisory))
		sb.WriteString("\n")
	}

	state := m.view.State
	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render(errs.ErrorMessage(m.err)))
		sb.WriteString("\n")
	case state.Err != nil:
		sb.WriteString(errorStyle.Render(errs.ErrorMessage(state.Err)))
		sb.WriteString("\n")
	}
	if state.Loading {
		sb.WriteString(m.spinner.View() + " Caricamento...\n")
	}

	if !state.Loading && state.Err == nil && len(state.Movies) == 0 {
		sb.WriteString(itemStyle.Render("Nessun film trovato."))
		sb.WriteString("\n")
	}
	for i, mv := range state.Movies {
		line := fmt.Sprintf("%2d. %s (%s) ★ %s", i+1, movie.ResolveTitle(mv), mv.Year(), mv.Rating())
		if i == m.selected {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString(itemStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	if m.view.TotalPages > 1 {
		sb.WriteString(m.paginator.View())
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(helpLine(m.keys.listHelp())))
	return sb.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func describeFilters(f movie.Filters, names map[int]string) string {
	genre := "tutti"
	if len(f.Genres) > 0 {
		labels := make([]string, len(f.Genres))
		for i, id := range f.Genres {
			labels[i] = names[id]
			if labels[i] == "" {
				labels[i] = fmt.Sprint(id)
			}
		}
		genre = strings.Join(labels, ", ")
	}
	year := f.Year
	if year == "" {
		year = "tutti"
	}
	rating := "tutti"
	if f.MinRating != "" {
		rating = f.MinRating + "+"
	}
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = movie.DefaultSort
	}
	return fmt.Sprintf("Genere: %s | Anno: %s | Voto: %s | Lingua: %s | Ordina: %s",
		genre, year, rating,
		optionLabel(movie.LanguageOptions, f.Language),
		optionLabel(movie.SortOptions, sortBy),
	)
}

func formatDetails(d movie.Details, names map[int]string) string {
	var sb strings.Builder
	sb.WriteString(selectedStyle.Render(movie.ResolveTitle(d.Movie)))
	sb.WriteString("\n")
	if d.Tagline != "" {
		sb.WriteString(itemStyle.Render(d.Tagline))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n%s • %s • ★ %s\n", d.Year(), movie.FormatRuntime(d.Runtime), d.Rating())

	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		name := g.Name
		if name == "" {
			name = names[g.ID]
		}
		genres = append(genres, name)
	}
	if len(genres) > 0 {
		fmt.Fprintf(&sb, "Generi: %s\n", strings.Join(genres, ", "))
	}

	fmt.Fprintf(&sb, "\n%s\n\n", movie.ResolveOverview(d.Movie))
	fmt.Fprintf(&sb, "Budget: %s\nIncassi: %s\n", movie.FormatCurrency(d.Budget), movie.FormatCurrency(d.Revenue))

	if cast := d.TopCast(castShown); len(cast) > 0 {
		sb.WriteString("\nCast:\n")
		for _, c := range cast {
			fmt.Fprintf(&sb, "  %s nel ruolo di %s\n", c.Name, c.Character)
		}
	}
	if len(d.ProductionCountries) > 0 {
		countries := make([]string, len(d.ProductionCountries))
		for i, c := range d.ProductionCountries {
			countries[i] = c.Name
		}
		fmt.Fprintf(&sb, "\nPaesi: %s\n", strings.Join(countries, ", "))
	}
	if len(d.SpokenLanguages) > 0 {
		langs := make([]string, len(d.SpokenLanguages))
		for i, l := range d.SpokenLanguages {
			langs[i] = l.Name
		}
		fmt.Fprintf(&sb, "Lingue: %s\n", strings.Join(langs, ", "))
	}
	if trailer, ok := findTrailer(d.Videos); ok {
		fmt.Fprintf(&sb, "\nTrailer: %s%s\n", youtubeWatch, trailer.Key)
	}
	if u := d.BackdropURL(); u != "" {
		fmt.Fprintf(&sb, "Immagine: %s\n", u)
	}
	return sb.String()
}

func findTrailer(videos []movie.Video) (movie.Video, bool) {
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v, true
		}
	}
	return movie.Video{}, false
}

func formatTrending(entries []trending.Entry) string {
	var sb strings.Builder
	sb.WriteString(selectedStyle.Render("Film di tendenza"))
	sb.WriteString("\n\n")
	if len(entries) == 0 {
		sb.WriteString(itemStyle.Render("Nessun film di tendenza."))
		sb.WriteString("\n")
		return sb.String()
	}
	for i, e := range entries {
		sb.WriteString(itemStyle.Render(fmt.Sprintf("%d. %s (%d)", i+1, e.SearchTerm, e.Count)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// cycle returns the option after cur, wrapping around. An unknown cur yields
// the first option.
func cycle[T comparable](opts []T, cur T) T {
	if len(opts) == 0 {
		return cur
	}
	i := slices.Index(opts, cur)
	return opts[(i+1)%len(opts)]
}

func optionValues[T any](opts []movie.Option[T]) []T {
	values := make([]T, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

func optionLabel[T comparable](opts []movie.Option[T], v T) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return fmt.Sprint(v)
}
