package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/catalog"
	"promptdeck/internal/mutate"
	"promptdeck/internal/nav"
)

// TaskCounter reports how many active templates the store holds.
type TaskCounter interface {
	CountTasks(ctx context.Context) (int, error)
}

type Options struct {
	Resolver  catalog.Resolver
	Facets    catalog.FacetSource
	Favorites mutate.Favorites
	Counter   TaskCounter

	AutoAdvanceDelay time.Duration
	// GlamourStyle names the markdown style for task details; "auto" follows
	// the terminal background.
	GlamourStyle string
	// Start is the address the browser opens on. The zero address starts at
	// the title page.
	Start nav.Address
	Log   *log.Logger
}

// Run opens the full-screen catalog browser and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	opts.GlamourStyle = markdownStyleFor(opts.GlamourStyle)

	m := newBrowser(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
