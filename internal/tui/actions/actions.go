package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/frontpage/internal/hnsearch"
)

type Service interface {
	FrontPage(ctx context.Context, page int) (hnsearch.Page, error)
}

type FetchSuccessMsg struct {
	Page     hnsearch.Page
	Duration time.Duration
	Source   string
}

type FetchErrorMsg struct {
	Err       error
	PageIndex int
	Duration  time.Duration
	Source    string
}

type OpenURLStatusMsg struct {
	Status string
}

type OpenURLErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

// FetchPageCmd performs the one network read of a page turn. There is no
// cancellation of an earlier in-flight fetch; whichever command resolves
// last wins.
func FetchPageCmd(service Service, page int, timeout time.Duration, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()

		result, err := service.FrontPage(ctx, page)
		if err != nil {
			return FetchErrorMsg{Err: err, PageIndex: page, Duration: time.Since(start), Source: source}
		}
		return FetchSuccessMsg{Page: result, Duration: time.Since(start), Source: source}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLStatusMsg{Status: "Opened URL in browser"}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLStatusMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLStatusMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
