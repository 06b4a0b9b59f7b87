package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glabrego/frontpage/internal/hnsearch"
	"github.com/glabrego/frontpage/internal/tui/actions"
	tuistate "github.com/glabrego/frontpage/internal/tui/state"
	"github.com/glabrego/frontpage/internal/tui/view"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fakeService struct {
	pages map[int]hnsearch.Page
	err   error

	calls []int
}

func (f *fakeService) FrontPage(_ context.Context, page int) (hnsearch.Page, error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return hnsearch.Page{}, f.err
	}
	return f.pages[page], nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func pageZero() hnsearch.Page {
	return hnsearch.Page{
		Stories: []hnsearch.Story{
			{ID: "a", Author: "Zed", Title: "X", URL: "https://example.com/x"},
			{ID: "b", Author: "Amy", Title: "Y", URL: "https://example.com/y"},
		},
		PageIndex:  0,
		TotalPages: 3,
	}
}

func loadedModel(t *testing.T, service *fakeService) Model {
	t.Helper()
	m := NewModel(service, time.Second)
	updated, _ := m.Update(actions.FetchSuccessMsg{Page: pageZero()})
	return updated.(Model)
}

func derivedIDs(m Model) []string {
	derived := m.derivedStories()
	out := make([]string, 0, len(derived))
	for _, s := range derived {
		out = append(out, s.ID)
	}
	return out
}

func TestInit_FetchesPageZero(t *testing.T) {
	service := &fakeService{pages: map[int]hnsearch.Page{0: pageZero()}}
	m := NewModel(service, time.Second)

	if !m.loading {
		t.Fatal("expected loading true before first fetch resolves")
	}

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected init command")
	}
	drainBatch(t, cmd, &m)
	if len(service.calls) != 1 || service.calls[0] != 0 {
		t.Fatalf("expected one fetch of page 0, got %v", service.calls)
	}
}

// drainBatch executes a command tree, feeding every produced msg back into
// the model so async outcomes are applied like the runtime would.
func drainBatch(t *testing.T, cmd tea.Cmd, m *Model) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			drainBatch(t, sub, m)
		}
		return
	}
	if msg == nil {
		return
	}
	updated, next := m.Update(msg)
	*m = updated.(Model)
	_ = next
}

func TestFetchSuccess_ReplacesStateWholesale(t *testing.T) {
	service := &fakeService{}
	m := loadedModel(t, service)

	if m.loading {
		t.Fatal("expected loading cleared after success")
	}
	if m.page != 0 || m.totalPages != 3 {
		t.Fatalf("unexpected pagination state: page=%d total=%d", m.page, m.totalPages)
	}
	if len(m.stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(m.stories))
	}
}

func TestFetchError_LeavesStaleStateAndClearsLoading(t *testing.T) {
	service := &fakeService{}
	m := loadedModel(t, service)

	updated, cmd := m.Update(keyMsg("r"))
	m = updated.(Model)
	if !m.loading {
		t.Fatal("expected loading during refetch")
	}
	if cmd == nil {
		t.Fatal("expected fetch command")
	}

	updated, _ = m.Update(actions.FetchErrorMsg{Err: errors.New("network down"), PageIndex: 0})
	m = updated.(Model)
	if m.loading {
		t.Fatal("expected loading cleared on failure")
	}
	if len(m.stories) != 2 || m.totalPages != 3 {
		t.Fatal("expected stale state retained on failure")
	}
	if strings.Contains(m.View(), "network down") {
		t.Fatal("expected failure kept out of rendered UI")
	}
}

func TestSortByAuthor_TogglesDirection(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	// NewModel starts on author ascending, so the first press flips it.
	if got := derivedIDs(m); got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected author ascending [b a], got %v", got)
	}

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(Model)
	if got := derivedIDs(m); got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected author descending [a b], got %v", got)
	}

	updated, _ = m.Update(keyMsg("a"))
	m = updated.(Model)
	if got := derivedIDs(m); got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected double toggle back to [b a], got %v", got)
	}
}

func TestSortFieldChange_ResetsAscending(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(Model)
	if m.sortAsc {
		t.Fatal("expected descending after toggle")
	}

	updated, _ = m.Update(keyMsg("t"))
	m = updated.(Model)
	if m.sortField != tuistate.SortByTitle || !m.sortAsc {
		t.Fatalf("expected title ascending, got %s asc=%v", m.sortField, m.sortAsc)
	}
	if got := derivedIDs(m); got[0] != "a" {
		t.Fatalf("expected title ascending [a b], got %v", got)
	}
}

func TestSortDoesNotRefetch(t *testing.T) {
	service := &fakeService{}
	m := loadedModel(t, service)

	for _, key := range []string{"a", "t", "s", "enter"} {
		updated, cmd := m.Update(keyMsg(key))
		m = updated.(Model)
		if cmd != nil {
			t.Fatalf("expected no command for %q", key)
		}
	}
	if len(service.calls) != 0 {
		t.Fatalf("expected no fetches, got %v", service.calls)
	}
}

func TestGoToPage_FetchesAndReplaces(t *testing.T) {
	service := &fakeService{pages: map[int]hnsearch.Page{
		1: {
			Stories:    []hnsearch.Story{{ID: "c", Author: "Bob", Title: "Z"}},
			PageIndex:  1,
			TotalPages: 3,
		},
	}}
	m := loadedModel(t, service)

	updated, cmd := m.Update(keyMsg("right"))
	m = updated.(Model)
	if m.page != 1 {
		t.Fatalf("expected page 1, got %d", m.page)
	}
	if !m.loading {
		t.Fatal("expected loading during page fetch")
	}
	drainBatch(t, cmd, &m)

	if len(service.calls) != 1 || service.calls[0] != 1 {
		t.Fatalf("expected one fetch of page 1, got %v", service.calls)
	}
	if got := derivedIDs(m); len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected wholesale replacement by page 1 content, got %v", got)
	}
	if m.loading {
		t.Fatal("expected loading cleared")
	}
}

func TestGoToPage_OutOfRangeIgnored(t *testing.T) {
	service := &fakeService{}
	m := loadedModel(t, service)

	updated, cmd := m.Update(keyMsg("left"))
	m = updated.(Model)
	if m.page != 0 || cmd != nil {
		t.Fatalf("expected page unchanged below 0, got page=%d", m.page)
	}

	updated, cmd = m.Update(keyMsg("9"))
	m = updated.(Model)
	if m.page != 0 || cmd != nil {
		t.Fatalf("expected page unchanged beyond totalPages, got page=%d", m.page)
	}
	if len(service.calls) != 0 {
		t.Fatalf("expected no fetches, got %v", service.calls)
	}
}

func TestSortPersistsAcrossPageChanges(t *testing.T) {
	service := &fakeService{pages: map[int]hnsearch.Page{
		1: {Stories: []hnsearch.Story{{ID: "c"}}, PageIndex: 1, TotalPages: 3},
	}}
	m := loadedModel(t, service)

	updated, _ := m.Update(keyMsg("t"))
	m = updated.(Model)

	updated, cmd := m.Update(keyMsg("right"))
	m = updated.(Model)
	drainBatch(t, cmd, &m)

	if m.sortField != tuistate.SortByTitle || !m.sortAsc {
		t.Fatalf("expected sort preserved across fetch, got %s asc=%v", m.sortField, m.sortAsc)
	}
}

func TestToggleExpand_SingleSlot(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.expandedID != "b" {
		t.Fatalf("expected first derived story (b) expanded, got %q", m.expandedID)
	}

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.expandedID != "a" {
		t.Fatalf("expected expansion moved to a, got %q", m.expandedID)
	}

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.expandedID != "" {
		t.Fatalf("expected second toggle to collapse, got %q", m.expandedID)
	}
}

func TestRemove_ClearsDanglingExpansion(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.expandedID != "b" {
		t.Fatalf("expected b expanded, got %q", m.expandedID)
	}

	updated, _ = m.Update(keyMsg("x"))
	m = updated.(Model)
	if len(m.stories) != 1 || m.stories[0].ID != "a" {
		t.Fatalf("expected exactly b removed, got %+v", m.stories)
	}
	if m.expandedID != "" {
		t.Fatalf("expected dangling expansion cleared, got %q", m.expandedID)
	}
}

func TestRemove_OnEmptyListIsNoOp(t *testing.T) {
	m := NewModel(nil, time.Second)
	updated, cmd := m.Update(keyMsg("x"))
	m = updated.(Model)
	if cmd != nil || len(m.stories) != 0 {
		t.Fatal("expected no-op on empty list")
	}
}

func TestNewPageReplacementInvalidatesExpansion(t *testing.T) {
	service := &fakeService{pages: map[int]hnsearch.Page{
		1: {Stories: []hnsearch.Story{{ID: "c"}}, PageIndex: 1, TotalPages: 3},
	}}
	m := loadedModel(t, service)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.expandedID == "" {
		t.Fatal("expected a story expanded")
	}

	updated, cmd := m.Update(keyMsg("right"))
	m = updated.(Model)
	drainBatch(t, cmd, &m)
	if m.expandedID != "" {
		t.Fatalf("expected expansion cleared when its id left the page, got %q", m.expandedID)
	}
}

func TestLastResolvedFetchWins(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	first := actions.FetchSuccessMsg{Page: hnsearch.Page{
		Stories: []hnsearch.Story{{ID: "p1"}}, PageIndex: 1, TotalPages: 3,
	}}
	second := actions.FetchSuccessMsg{Page: hnsearch.Page{
		Stories: []hnsearch.Story{{ID: "p2"}}, PageIndex: 2, TotalPages: 3,
	}}

	updated, _ := m.Update(first)
	m = updated.(Model)
	updated, _ = m.Update(second)
	m = updated.(Model)

	if m.page != 2 || m.stories[0].ID != "p2" {
		t.Fatalf("expected last resolution to win, got page=%d stories=%v", m.page, m.stories)
	}
}

func TestSidebar_ToggleAndOutsidePress(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	updated, _ := m.Update(keyMsg("s"))
	m = updated.(Model)
	if !m.sidebarOpen {
		t.Fatal("expected sidebar open after toggle")
	}
	if !strings.Contains(m.View(), "Log out") {
		t.Fatal("expected sidebar content rendered")
	}

	inside := tea.MouseMsg{X: view.SidebarWidth - 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	updated, _ = m.Update(inside)
	m = updated.(Model)
	if !m.sidebarOpen {
		t.Fatal("expected press inside sidebar to keep it open")
	}

	outside := tea.MouseMsg{X: view.SidebarWidth + 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	updated, _ = m.Update(outside)
	m = updated.(Model)
	if m.sidebarOpen {
		t.Fatal("expected press outside sidebar to close it")
	}

	motion := tea.MouseMsg{X: view.SidebarWidth + 10, Action: tea.MouseActionMotion}
	updated, _ = m.Update(keyMsg("s"))
	m = updated.(Model)
	updated, _ = m.Update(motion)
	m = updated.(Model)
	if !m.sidebarOpen {
		t.Fatal("expected non-press mouse events ignored")
	}
}

func TestView_ShowsChromeAndCards(t *testing.T) {
	m := loadedModel(t, &fakeService{})
	m.width = 100
	m.height = 40

	rendered := m.View()
	for _, want := range []string{"Front Page", "by Amy", "by Zed", "page:", "idle"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "Log out") {
		t.Fatal("expected sidebar hidden by default")
	}
}

func TestView_LoadingIndicator(t *testing.T) {
	m := NewModel(&fakeService{}, time.Second)
	if !strings.Contains(m.View(), "Loading stories...") {
		t.Fatalf("expected loading indicator, got:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "loading") {
		t.Fatalf("expected loading state in footer, got:\n%s", m.View())
	}
}

func TestView_ExpandedCardShowsDetail(t *testing.T) {
	m := loadedModel(t, &fakeService{})
	m.stories[1].CreatedAt = "2026-08-02T00:00:00Z"

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if !strings.Contains(m.View(), "points") {
		t.Fatalf("expected detail block rendered, got:\n%s", m.View())
	}
}

func TestHelpOverlay(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	if !strings.Contains(m.View(), "Help") {
		t.Fatalf("expected help overlay, got:\n%s", m.View())
	}

	updated, _ = m.Update(keyMsg("?"))
	m = updated.(Model)
	if strings.Contains(m.View(), "Help (") {
		t.Fatal("expected help closed")
	}
}

func TestStatusLine_SetAndCleared(t *testing.T) {
	m := loadedModel(t, &fakeService{})

	updated, cmd := m.Update(actions.OpenURLStatusMsg{Status: "URL copied to clipboard"})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected clear-status command")
	}
	if !strings.Contains(m.View(), "URL copied to clipboard") {
		t.Fatal("expected status rendered")
	}

	updated, _ = m.Update(actions.ClearStatusMsg{ID: m.statusID})
	m = updated.(Model)
	if strings.Contains(m.View(), "URL copied to clipboard") {
		t.Fatal("expected status cleared")
	}
}

func TestOpenFocusedURL_InvalidURLSetsStatus(t *testing.T) {
	m := loadedModel(t, &fakeService{})
	m.stories = []hnsearch.Story{{ID: "a", Author: "Zed", URL: ""}}

	updated, _ := m.Update(keyMsg("o"))
	m = updated.(Model)
	if m.status == "" {
		t.Fatal("expected validation status for missing URL")
	}
}

func TestOpenFocusedURL_UsesInjectedOpener(t *testing.T) {
	m := loadedModel(t, &fakeService{})
	opened := ""
	m.openURLFn = func(u string) error {
		opened = u
		return nil
	}
	m.copyURLFn = func(string) error { return errors.New("unused") }

	updated, cmd := m.Update(keyMsg("o"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected open command")
	}
	msg := cmd()
	if _, ok := msg.(actions.OpenURLStatusMsg); !ok {
		t.Fatalf("expected status msg, got %T", msg)
	}
	// First derived story under author-ascending sort is b.
	if opened != "https://example.com/y" {
		t.Fatalf("expected focused story URL opened, got %q", opened)
	}
}
