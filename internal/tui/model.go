package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/frontpage/internal/debuglog"
	"github.com/glabrego/frontpage/internal/hnsearch"
	"github.com/glabrego/frontpage/internal/tui/actions"
	"github.com/glabrego/frontpage/internal/tui/platform"
	tuistate "github.com/glabrego/frontpage/internal/tui/state"
	tuitheme "github.com/glabrego/frontpage/internal/tui/theme"
	"github.com/glabrego/frontpage/internal/tui/view"
)

type Model struct {
	service actions.Service

	stories     []hnsearch.Story
	page        int
	totalPages  int
	sortField   tuistate.SortField
	sortAsc     bool
	expandedID  string
	sidebarOpen bool
	loading     bool

	cursor   int
	width    int
	height   int
	showHelp bool
	status   string
	statusID int
	spin     spinner.Model

	fetchTimeout time.Duration
	openURLFn    func(string) error
	copyURLFn    func(string) error
	theme        tuitheme.Theme
}

func NewModel(service actions.Service, fetchTimeout time.Duration) Model {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		service:      service,
		sortField:    tuistate.SortByAuthor,
		sortAsc:      true,
		loading:      service != nil,
		spin:         sp,
		fetchTimeout: fetchTimeout,
		openURLFn:    platform.OpenURLInBrowser,
		copyURLFn:    platform.CopyURLToClipboard,
		theme:        tuitheme.Default(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(
		m.spin.Tick,
		actions.FetchPageCmd(m.service, 0, m.fetchTimeout, "init"),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		// A press outside the sidebar's rendered bounds force-closes it.
		if msg.Action == tea.MouseActionPress && m.sidebarOpen && msg.X >= view.SidebarWidth {
			m.sidebarOpen = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case actions.FetchSuccessMsg:
		m.loading = false
		m.stories = msg.Page.Stories
		m.page = msg.Page.PageIndex
		m.totalPages = msg.Page.TotalPages
		if !tuistate.ContainsStory(m.stories, m.expandedID) {
			m.expandedID = ""
		}
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.stories))
		debuglog.Debugf("fetched front page %d (%d stories, %d pages, %s, source=%s)",
			msg.Page.PageIndex, len(msg.Page.Stories), msg.Page.TotalPages, msg.Duration, msg.Source)
		return m, nil

	case actions.FetchErrorMsg:
		// Stale stories and totalPages stay; the failure goes to the log
		// only, never to the rendered UI.
		m.loading = false
		debuglog.Errorf("front page fetch failed (page %d, source=%s, after %s): %v",
			msg.PageIndex, msg.Source, msg.Duration, msg.Err)
		return m, nil

	case actions.OpenURLStatusMsg:
		m.status = msg.Status
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)

	case actions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)

	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "esc", "?":
			m.showHelp = false
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "up", "k":
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(m.stories))
		return m, nil
	case "down", "j":
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(m.stories))
		return m, nil
	case "enter", " ":
		if story, ok := m.focusedStory(); ok {
			m.expandedID = tuistate.ToggleExpand(m.expandedID, story.ID)
		}
		return m, nil
	case "x":
		if story, ok := m.focusedStory(); ok {
			m.stories, m.expandedID = tuistate.RemoveStory(m.stories, story.ID, m.expandedID)
			m.cursor = tuistate.ClampCursor(m.cursor, len(m.stories))
		}
		return m, nil
	case "a":
		m.sortField, m.sortAsc = tuistate.ToggleSort(m.sortField, m.sortAsc, tuistate.SortByAuthor)
		return m, nil
	case "t":
		m.sortField, m.sortAsc = tuistate.ToggleSort(m.sortField, m.sortAsc, tuistate.SortByTitle)
		return m, nil
	case "s":
		m.sidebarOpen = !m.sidebarOpen
		return m, nil
	case "left", "h":
		return m.goToPage(m.page - 1)
	case "right", "l":
		return m.goToPage(m.page + 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.goToPage(int(msg.String()[0] - '1'))
	case "r":
		return m.fetchPage(m.page, "manual")
	case "o":
		return m.openFocusedURL()
	case "y":
		return m.copyFocusedURL()
	}
	return m, nil
}

// goToPage ignores indices the rendered page controls could not produce.
func (m Model) goToPage(n int) (tea.Model, tea.Cmd) {
	if !tuistate.InPageRange(n, m.totalPages) || n == m.page {
		return m, nil
	}
	m.page = n
	return m.fetchPage(n, "page_change")
}

func (m Model) fetchPage(n int, source string) (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(
		m.spin.Tick,
		actions.FetchPageCmd(m.service, n, m.fetchTimeout, source),
	)
}

func (m Model) openFocusedURL() (tea.Model, tea.Cmd) {
	story, ok := m.focusedStory()
	if !ok {
		return m, nil
	}
	validURL, err := platform.ValidateStoryURL(story.URL)
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, actions.OpenURLCmd(validURL, m.openURLFn, m.copyURLFn)
}

func (m Model) copyFocusedURL() (tea.Model, tea.Cmd) {
	story, ok := m.focusedStory()
	if !ok {
		return m, nil
	}
	validURL, err := platform.ValidateStoryURL(story.URL)
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, actions.CopyURLCmd(validURL, m.copyURLFn)
}

// focusedStory resolves the cursor against the derived sorted list, the
// same projection the view renders.
func (m Model) focusedStory() (hnsearch.Story, bool) {
	derived := m.derivedStories()
	if len(derived) == 0 {
		return hnsearch.Story{}, false
	}
	return derived[tuistate.ClampCursor(m.cursor, len(derived))], true
}

func (m Model) derivedStories() []hnsearch.Story {
	return tuistate.SortStories(m.stories, m.sortField, m.sortAsc)
}

func (m Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = 100
	}
	if m.sidebarOpen {
		width -= view.SidebarWidth
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	width := m.contentWidth()
	var b strings.Builder
	b.WriteString(view.Header(width, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Toolbar())
	b.WriteString("\n")
	b.WriteString(view.SortBar(string(m.sortField), m.sortAsc, m.theme))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" Loading stories...\n")
	} else if len(m.stories) == 0 {
		b.WriteString("No stories available.\n")
	} else {
		cursor := tuistate.ClampCursor(m.cursor, len(m.stories))
		for i, story := range m.derivedStories() {
			b.WriteString(view.RenderStoryCard(view.StoryCardParams{
				Story:    story,
				Active:   i == cursor,
				Expanded: story.ID == m.expandedID,
				Width:    width,
			}, m.theme))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(view.PaginationRow(m.page, m.totalPages, m.theme))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.MetaValue.Render(m.status))
	}

	main := b.String()
	sidebar := ""
	if m.sidebarOpen {
		sidebar = view.Sidebar(strings.Count(main, "\n")+1, m.theme)
	}
	footer := view.Footer(view.FooterParams{
		Page:       m.page,
		TotalPages: m.totalPages,
		Shown:      len(m.stories),
		Loading:    m.loading,
	}, m.theme)

	return view.Layout(sidebar, main, footer) + "\n"
}

func (m Model) helpView() string {
	lines := []string{
		"Help (? or esc to close)",
		"",
		"Navigation:",
		"  j/k or arrows move the cursor",
		"  h/l or arrows switch page, 1-9 jump to a page",
		"Stories:",
		"  enter/space expands or collapses the focused card",
		"  x removes the focused story from the current page",
		"  o opens the story URL, y copies it",
		"Sorting:",
		"  a sorts by author, t by title; repeating a key flips direction",
		"Other:",
		"  s toggles the sidebar, r refetches the page, q quits",
	}
	return strings.Join(lines, "\n") + "\n"
}
