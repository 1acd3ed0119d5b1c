package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
	"promptdeck/internal/nav"
)

// advanceMsg is the delayed redirect scheduled by the title page.
type advanceMsg struct{ to nav.Address }

// browser drives the same navigation state machine as the web front end:
// every key that changes page builds an address and runs it through the
// controller, so state, acknowledgment and auto-advance behave identically.
type browser struct {
	ctx  context.Context
	opts Options
	ctrl nav.Controller

	state nav.PageState
	addr  nav.Address
	page  nav.PageID
	// back is the catalog address to return to from help.
	back nav.Address

	width  int
	height int

	list      list.Model
	search    textinput.Model
	searching bool
	detail    viewport.Model

	result    catalog.PageResult
	facets    catalog.FacetList
	task      model.Task
	taskFound bool
	count     int
	status    string

	initCmd tea.Cmd
}

func newBrowser(ctx context.Context, opts Options) browser {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(opts.GlamourStyle) == "" {
		opts.GlamourStyle = "dark"
	}

	l := list.New(nil, taskDelegate{}, 80, 16)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "search titles and descriptions"
	ti.Prompt = "/ "
	ti.CharLimit = 200

	m := browser{
		ctx:    ctx,
		opts:   opts,
		ctrl:   nav.Controller{AutoAdvanceDelay: opts.AutoAdvanceDelay},
		width:  80,
		height: 24,
		list:   l,
		search: ti,
		detail: viewport.New(80, 16),
	}
	m.initCmd = m.navigate(opts.Start)
	return m
}

func (m browser) Init() tea.Cmd { return m.initCmd }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case advanceMsg:
		// The user may have moved on before the timer fired.
		if m.page != nav.PageTitle {
			return m, nil
		}
		return m, m.navigate(msg.to)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m browser) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.page {
	case nav.PageTitle:
		switch key {
		case "q":
			return m, tea.Quit
		case "enter", " ":
			return m, m.navigate(nav.PageAddress(nav.PageNotice))
		}
		return m, nil

	case nav.PageNotice:
		switch key {
		case "q":
			return m, tea.Quit
		case "enter", "y":
			return m, m.navigate(m.addr.WithPage(nav.PageNotice).With(nav.KeyAck, "1"))
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		if m.page == nav.PageCatalog {
			m.back = m.addr
		}
		return m, m.navigate(nav.PageAddress(nav.PageHelp))
	case "w":
		return m, m.navigate(nav.PageAddress(nav.PageWelcome))
	}

	switch m.page {
	case nav.PageWelcome:
		if key == "enter" || key == "c" {
			return m, m.navigate(nav.CatalogAddress(catalog.DefaultFilter()))
		}
	case nav.PageHelp:
		if key == "esc" || key == "backspace" || key == "enter" {
			back := m.back
			if back.Encode() == "" {
				back = nav.CatalogAddress(catalog.DefaultFilter())
			}
			return m, m.navigate(back)
		}
	case nav.PageCatalog:
		return m.updateCatalog(msg)
	case nav.PageTaskDetail:
		return m.updateDetail(msg)
	case nav.PageEditTask:
		if key == "esc" || key == "backspace" {
			return m, m.navigate(nav.TaskAddress(m.filter(), m.addr.TaskID()))
		}
	}
	return m, nil
}

func (m browser) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.filter()
	switch msg.String() {
	case "/":
		m.searching = true
		m.search.SetValue(f.SearchTerm)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "d":
		f.Division = cycle(m.facets.Divisions, f.Division)
		f.Category = model.AllValue
		return m, m.navigate(nav.CatalogAddress(f.WithPage(1)))
	case "c":
		f.Category = cycle(m.facets.Categories, f.Category)
		return m, m.navigate(nav.CatalogAddress(f.WithPage(1)))
	case "f":
		f.FavoritesOnly = !f.FavoritesOnly
		return m, m.navigate(nav.CatalogAddress(f.WithPage(1)))
	case "m":
		f.OwnedOnly = !f.OwnedOnly
		return m, m.navigate(nav.CatalogAddress(f.WithPage(1)))
	case "x":
		return m, m.navigate(nav.CatalogAddress(catalog.DefaultFilter()))
	case "n", "right":
		if m.result.Page.HasNext() {
			return m, m.navigate(nav.CatalogAddress(f.WithPage(m.result.Page.Page + 1)))
		}
		return m, nil
	case "p", "left":
		if m.result.Page.HasPrev() {
			return m, m.navigate(nav.CatalogAddress(f.WithPage(m.result.Page.Page - 1)))
		}
		return m, nil
	case "*", " ":
		if t, ok := m.selected(); ok {
			m.toggle(t.ID)
			m.loadCatalog()
		}
		return m, nil
	case "enter":
		if t, ok := m.selected(); ok {
			return m, m.navigate(nav.TaskAddress(f, t.ID))
		}
		return m, nil
	case "e":
		if t, ok := m.selected(); ok {
			return m, m.navigate(nav.EditAddress(f, t.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browser) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		return m, m.navigate(nav.BackToCatalog(m.addr))
	case "*", " ":
		if m.taskFound {
			m.toggle(m.task.ID)
			m.loadTask()
		}
		return m, nil
	case "e":
		if m.taskFound {
			return m, m.navigate(nav.EditAddress(m.filter(), m.task.ID))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		f := m.filter()
		f.SearchTerm = strings.TrimSpace(m.search.Value())
		return m, m.navigate(nav.CatalogAddress(f.WithPage(1)))
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// navigate runs addr through the controller and loads the page it lands on.
// An immediate redirect replaces the address; a delayed one is scheduled.
func (m *browser) navigate(addr nav.Address) tea.Cmd {
	prior := m.state
	tr := m.ctrl.Navigate(addr, prior)
	if tr.FirstAcknowledgment {
		m.logger().Info("notice.acknowledged")
	}
	if tr.State.ActivePage != prior.ActivePage {
		m.logger().WithFields(log.Fields{
			"from": prior.ActivePage,
			"to":   tr.State.ActivePage,
		}).Debug("nav.transition")
	}
	m.state = tr.State
	m.addr = addr
	m.page = tr.Render
	m.status = ""

	var cmd tea.Cmd
	if tr.Redirect != nil {
		if tr.Immediate() {
			m.addr = *tr.Redirect
		} else {
			to := *tr.Redirect
			cmd = tea.Tick(tr.Delay, func(time.Time) tea.Msg { return advanceMsg{to: to} })
		}
	}
	m.load()
	return cmd
}

func (m *browser) load() {
	switch m.page {
	case nav.PageWelcome:
		m.count = 0
		if m.opts.Counter != nil {
			n, err := m.opts.Counter.CountTasks(m.ctx)
			if err != nil {
				m.logger().WithError(err).Warn("catalog.count_failed")
			}
			m.count = n
		}
	case nav.PageCatalog:
		m.list.ResetSelected()
		m.loadCatalog()
	case nav.PageTaskDetail, nav.PageEditTask:
		m.loadTask()
	}
}

// loadCatalog resolves the current address. A page past the end moves the
// address to the clamped page.
func (m *browser) loadCatalog() {
	pr := m.opts.Resolver.Page(m.ctx, m.addr)
	if pr.Page.Clamped(pr.Filter.Page) {
		m.addr = nav.CatalogAddress(pr.Filter.WithPage(pr.Page.Page))
		pr = m.opts.Resolver.Page(m.ctx, m.addr)
	}
	m.result = pr
	m.facets = catalog.Facets(m.ctx, m.opts.Facets, pr.Filter.Division)

	idx := m.list.Index()
	items := make([]list.Item, 0, len(pr.Page.Items))
	for _, t := range pr.Page.Items {
		items = append(items, taskItem{task: t})
	}
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
	if n := pr.Fallback.Notice(len(pr.Tasks)); n != "" && m.status == "" {
		m.status = n
	}
}

func (m *browser) loadTask() {
	m.task, m.taskFound = m.opts.Resolver.Lookup(m.ctx, m.addr.TaskID())
	m.detail.SetContent(m.renderTask())
	m.detail.GotoTop()
}

func (m *browser) toggle(id string) {
	res := m.opts.Favorites.Toggle(m.ctx, id)
	switch {
	case !res.Found:
		m.status = "Could not update favorite."
	case res.IsFavorite:
		m.status = "Added to favorites."
	default:
		m.status = "Removed from favorites."
	}
}

func (m *browser) resize() {
	bodyH := m.height - 7
	if bodyH < 4 {
		bodyH = 4
	}
	w := m.width
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, bodyH)
	m.search.Width = w - 4
	m.detail.Width = w
	m.detail.Height = bodyH
	if m.page == nav.PageTaskDetail || m.page == nav.PageEditTask {
		m.detail.SetContent(m.renderTask())
	}
}

func (m browser) filter() catalog.CatalogFilter { return catalog.ParseFilter(m.addr) }

func (m browser) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m browser) logger() *log.Logger {
	if m.opts.Log != nil {
		return m.opts.Log
	}
	return log.StandardLogger()
}

// cycle returns the option after cur, wrapping around. An unknown cur moves
// to the first option.
func cycle(opts []string, cur string) string {
	if len(opts) == 0 {
		return cur
	}
	for i, o := range opts {
		if strings.EqualFold(o, cur) {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
