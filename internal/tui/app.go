package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nexus/internal/ai"
	"github.com/nikbrunner/nexus/internal/library"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/theme"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

// ThemeStore persists the theme preference.
type ThemeStore interface {
	Load(ctx context.Context) theme.Mode
	Save(ctx context.Context, mode theme.Mode) error
}

// App is the main bubbletea model for the bookmark manager.
type App struct {
	ctx      context.Context
	lib      *library.Library
	themes   ThemeStore
	analyzer ai.Analyzer
	opener   func(url string) error
	copier   func(text string) error
	log      logger.Logger

	keys         KeyMap
	formKeys     FormKeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	watcher      *theme.Watcher
	pollInterval time.Duration

	mode       Mode
	view       search.View
	categories []string
	items      []model.Bookmark
	cursor     int

	// For gg command
	lastKeyWasG bool

	searchInput textinput.Model
	form        AddFormState
	deleteID    string

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Context  context.Context // optional, defaults to context.Background
	Library  *library.Library
	Themes   ThemeStore   // optional, theme changes are not persisted if nil
	Analyzer ai.Analyzer  // optional, analysis yields the fallback if nil
	Signal   theme.Signal // optional, system mode resolves to light if nil
	Opener   func(url string) error
	Copier   func(text string) error
	Log      logger.Logger

	// PollInterval is how often the host color scheme is re-read while
	// the theme mode is system. Zero disables polling.
	PollInterval time.Duration

	Keys *KeyMap // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	log := params.Log
	if log == nil {
		log = logger.NewNop()
	}

	mode := theme.System
	if params.Themes != nil {
		mode = params.Themes.Load(ctx)
	}
	watcher := theme.NewWatcher(mode, params.Signal)

	cfg := layout.DefaultConfig()
	searchInput := textinput.New()
	searchInput.Placeholder = "Search title, description, URL or tags..."
	searchInput.CharLimit = cfg.Input.SearchCharLimit
	searchInput.Width = cfg.Input.SearchWidth
	searchInput.Prompt = "/ "

	app := App{
		ctx:          ctx,
		lib:          params.Library,
		themes:       params.Themes,
		analyzer:     params.Analyzer,
		opener:       params.Opener,
		copier:       params.Copier,
		log:          log,
		keys:         keys,
		formKeys:     DefaultFormKeyMap(),
		styles:       NewStyles(watcher.Scheme()),
		layoutConfig: cfg,
		watcher:      watcher,
		pollInterval: params.PollInterval,
		mode:         ModeNormal,
		view:         search.NewView(),
		searchInput:  searchInput,
		form:         NewAddFormState(cfg),
		width:        80,
		height:       24,
	}

	app.refresh()
	return app
}

// refresh recomputes categories and visible items from the library.
func (a *App) refresh() {
	a.categories = a.lib.Categories()
	a.view = a.view.Normalize(a.categories)
	a.items = a.lib.View(a.view)
	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the visible bookmarks.
func (a App) Items() []model.Bookmark {
	return a.items
}

// Mode returns the current UI mode.
func (a App) Mode() Mode {
	return a.mode
}

// CurrentView returns the active category and query.
func (a App) CurrentView() search.View {
	return a.view
}

// ThemeMode returns the theme preference.
func (a App) ThemeMode() theme.Mode {
	return a.watcher.Mode()
}

// Scheme returns the resolved color scheme.
func (a App) Scheme() theme.Scheme {
	return a.watcher.Scheme()
}

// Message returns the current status message.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Form returns the add form state.
func (a App) Form() AddFormState {
	return a.form
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.pollTheme()
}

func (a App) pollTheme() tea.Cmd {
	if a.pollInterval <= 0 {
		return nil
	}
	return tea.Tick(a.pollInterval, func(time.Time) tea.Msg {
		return themeTickMsg{}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case themeTickMsg:
		if a.watcher.Poll() {
			a.styles = NewStyles(a.watcher.Scheme())
		}
		return a, a.pollTheme()

	case analysisMsg:
		return a.handleAnalysis(msg), nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.handleSearchMode(msg)
		case ModeAdd:
			return a.handleAddMode(msg)
		case ModeConfirmDelete:
			return a.handleConfirmDeleteMode(msg), nil
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		default:
			return a.handleNormalMode(msg)
		}
	}

	return a, nil
}

func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.NextCategory):
		a.shiftCategory(1)

	case key.Matches(msg, a.keys.PrevCategory):
		a.shiftCategory(-1)

	case key.Matches(msg, a.keys.Reset):
		a.view = a.view.Reset()
		a.searchInput.Reset()
		a.cursor = 0
		a.refresh()

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.SetValue(a.view.Query)
		a.searchInput.CursorEnd()
		cmd := a.searchInput.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAdd
		a.form.Open()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if b := a.selected(); b != nil {
			a.deleteID = b.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Like):
		a.vote(model.VoteLike)

	case key.Matches(msg, a.keys.Dislike):
		a.vote(model.VoteDislike)

	case key.Matches(msg, a.keys.Open):
		if b := a.selected(); b != nil && a.opener != nil {
			if err := a.opener(b.URL); err != nil {
				a.setMessage(MessageError, "Could not open browser: "+err.Error())
			}
		}

	case key.Matches(msg, a.keys.YankURL):
		if b := a.selected(); b != nil && a.copier != nil {
			if err := a.copier(b.URL); err != nil {
				a.setMessage(MessageError, "Could not copy URL: "+err.Error())
			} else {
				a.setMessage(MessageSuccess, "Copied "+b.URL)
			}
		}

	case key.Matches(msg, a.keys.Theme):
		a.cycleTheme()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searchInput.Reset()
		a.searchInput.Blur()
		a.view.Query = ""
		a.mode = ModeNormal
		a.cursor = 0
		a.refresh()
		return a, nil
	case tea.KeyEnter:
		a.searchInput.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if q := a.searchInput.Value(); q != a.view.Query {
		a.view.Query = q
		a.cursor = 0
		a.refresh()
	}
	return a, cmd
}

func (a App) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.formKeys.Cancel):
		a.form.Close()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.formKeys.Analyze):
		return a.startAnalysis()

	case key.Matches(msg, a.formKeys.Next):
		a.form.SetFocus(a.form.Focus + 1)
		return a, nil

	case key.Matches(msg, a.formKeys.Prev):
		a.form.SetFocus(a.form.Focus - 1)
		return a, nil

	case key.Matches(msg, a.formKeys.Submit):
		return a.submitForm(), nil
	}

	var cmd tea.Cmd
	a.form.Inputs[a.form.Focus], cmd = a.form.Inputs[a.form.Focus].Update(msg)
	return a, cmd
}

func (a App) handleConfirmDeleteMode(msg tea.KeyMsg) App {
	id := a.deleteID
	a.deleteID = ""
	a.mode = ModeNormal

	switch msg.String() {
	case "y", "Y", "enter":
		_, err := a.lib.Delete(a.ctx, id)
		a.refresh()
		if err != nil {
			a.persistWarning(err)
		} else {
			a.setMessage(MessageSuccess, "Bookmark deleted")
		}
	}
	return a
}

// startAnalysis requests enrichment for the URL field. A request is only
// issued when the URL is set and no analysis of this session is running.
func (a App) startAnalysis() (tea.Model, tea.Cmd) {
	url := a.form.Value(FieldURL)
	if url == "" || a.form.Analyzing {
		return a, nil
	}

	a.form.Analyzing = true
	session := a.form.Session
	if a.analyzer == nil {
		return a, func() tea.Msg {
			return analysisMsg{session: session, analysis: ai.Analysis{
				URL:      url,
				Metadata: ai.Fallback(),
				Fallback: true,
				Err:      ai.ErrNoAPIKey,
			}}
		}
	}

	ctx, analyzer := a.ctx, a.analyzer
	return a, func() tea.Msg {
		return analysisMsg{session: session, analysis: <-ai.AnalyzeAsync(ctx, analyzer, url)}
	}
}

func (a App) handleAnalysis(msg analysisMsg) App {
	if a.mode != ModeAdd || msg.session != a.form.Session {
		a.log.Debug("discarding stale analysis", logger.String("url", msg.analysis.URL))
		return a
	}

	a.form.Analyzing = false
	a.form.Fill(msg.analysis.Metadata)
	if msg.analysis.Fallback {
		a.setMessage(MessageWarning, "Could not analyze the URL, placeholders were filled in")
	} else {
		a.setMessage(MessageSuccess, "Fields filled from analysis")
	}
	return a
}

func (a App) submitForm() App {
	params := a.form.Params()
	if params.URL == "" {
		a.form.SetFocus(FieldURL)
		a.setMessage(MessageError, "URL is required")
		return a
	}

	_, err := a.lib.Add(a.ctx, params)
	a.form.Close()
	a.mode = ModeNormal
	a.cursor = 0
	a.refresh()

	if err != nil {
		a.persistWarning(err)
	} else {
		a.setMessage(MessageSuccess, "Bookmark added")
	}
	return a
}

func (a *App) vote(v model.Vote) {
	b := a.selected()
	if b == nil {
		return
	}
	_, err := a.lib.Vote(a.ctx, b.ID, v)
	a.refresh()
	if err != nil {
		a.persistWarning(err)
	}
}

func (a *App) cycleTheme() {
	next := a.watcher.Mode().Next()
	a.styles = NewStyles(a.watcher.SetMode(next))
	a.setMessage(MessageInfo, "Theme: "+string(next))

	if a.themes == nil {
		return
	}
	if err := a.themes.Save(a.ctx, next); err != nil {
		a.setMessage(MessageWarning, "Theme changed but could not be saved")
	}
}

func (a *App) shiftCategory(delta int) {
	if len(a.categories) == 0 {
		return
	}
	idx := 0
	for i, c := range a.categories {
		if c == a.view.Category {
			idx = i
			break
		}
	}
	n := len(a.categories)
	a.view.Category = a.categories[((idx+delta)%n+n)%n]
	a.cursor = 0
	a.refresh()
}

func (a App) selected() *model.Bookmark {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return nil
	}
	return &a.items[a.cursor]
}

// persistWarning reports a failed save. The change itself stays visible.
func (a *App) persistWarning(err error) {
	if errors.Is(err, library.ErrPersist) {
		a.setMessage(MessageWarning, "Change applied but could not be saved")
		return
	}
	a.setMessage(MessageError, err.Error())
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
