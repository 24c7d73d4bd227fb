package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/tasks"
	"github.com/samber/lo"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	ItemListView
	ConfirmView
	ExportView
	ResultView
)

// Catalog lists the current user's playlists and reads their items.
type Catalog interface {
	tasks.PlaylistSource
	AllCurrentUserPlaylists(ctx context.Context) ([]models.SimplePlaylist, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	catalog      Catalog
	engine       *tasks.PlaylistEngine
	opts         tasks.BulkExportOpts
	width        int
	height       int
	playlistList list.Model
	playlists    []models.SimplePlaylist
	marked       map[string]bool
	itemList     list.Model
	preview      *tasks.PlaylistExport
	pending      []string
	run          *exportRun
	progress     tasks.ProgressUpdate
	result       *tasks.BulkExportResult
	err          error
	help         help.Model
	keys         keyMap
}

// exportRun carries a background export's progress and its final outcome.
type exportRun struct {
	progress chan tasks.ProgressUpdate
	done     chan exportComplete
}

// NewModel creates a TUI model. Every export it starts uses opts.
func NewModel(ctx context.Context, catalog Catalog, engine *tasks.PlaylistEngine, opts tasks.BulkExportOpts) *Model {
	return &Model{
		ctx:          ctx,
		view:         PlaylistListView,
		catalog:      catalog,
		engine:       engine,
		opts:         opts,
		playlistList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		itemList:     list.New(nil, list.NewDefaultDelegate(), 0, 0),
		marked:       map[string]bool{},
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Err is the error that ended the session, if any.
func (m *Model) Err() error { return m.err }

// Result is the outcome of the last export, nil until one completes.
func (m *Model) Result() *tasks.BulkExportResult { return m.result }

// Init initializes the TUI by fetching the user's playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

func (m *Model) listSize() (int, int) {
	return max(m.width-4, 0), max(m.height-8, 0)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := m.listSize()
		m.playlistList.SetSize(w, h)
		m.itemList.SetSize(w, h)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case ItemListView:
			return m.handleItemListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ExportView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlaylistsFetched:
		data := msg.data.(playlistsFetched)
		if data.err != nil {
			m.err = data.err
			return m, tea.Quit
		}
		m.playlists = data.playlists
		items := lo.Map(data.playlists, func(p models.SimplePlaylist, _ int) list.Item {
			return playlistItem{playlist: p, marked: m.marked}
		})
		w, h := m.listSize()
		m.playlistList = list.New(items, list.NewDefaultDelegate(), w, h)
		m.playlistList.Title = "Your Playlists"
		return m, nil

	case MsgItemsFetched:
		data := msg.data.(itemsFetched)
		if data.err != nil {
			m.err = data.err
			m.view = PlaylistListView
			return m, nil
		}
		m.err = nil
		m.preview = data.export
		items := lo.Map(data.export.Items, func(e models.PlaylistTrack, _ int) list.Item {
			return entryItem{entry: e}
		})
		w, h := m.listSize()
		m.itemList = list.New(items, list.NewDefaultDelegate(), w, h)
		m.itemList.Title = fmt.Sprintf("Items in '%s'", data.export.Playlist.Name)
		m.view = ItemListView
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgExportComplete:
		data := msg.data.(exportComplete)
		m.result, m.err = data.result, data.err
		m.run = nil
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + m.renderCurrent()
	}
	return m.renderCurrent()
}

func (m *Model) renderCurrent() string {
	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case ItemListView:
		return m.renderItemList()
	case ConfirmView:
		return m.renderConfirm()
	case ExportView:
		return m.renderExport()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// selected returns the marked playlist IDs in list order, or the highlighted one when none are marked.
func (m *Model) selected() []string {
	ids := lo.FilterMap(m.playlists, func(p models.SimplePlaylist, _ int) (string, bool) {
		return p.ID, m.marked[p.ID]
	})
	if len(ids) > 0 {
		return ids
	}
	if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
		return []string{pl.playlist.ID}
	}
	return nil
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.preview):
		if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.fetchItems(pl.playlist.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.mark):
		if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			id := pl.playlist.ID
			if m.marked[id] {
				delete(m.marked, id)
			} else {
				m.marked[id] = true
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.export):
		if ids := m.selected(); len(ids) > 0 {
			m.pending = ids
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleItemListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.itemList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.export):
		m.pending = []string{m.preview.Playlist.ID}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.pending = nil
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		m.view = ExportView
		m.progress = tasks.ProgressUpdate{Total: len(m.pending), Message: "Starting export..."}
		return m, m.startExport(m.pending)
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = PlaylistListView
		clear(m.marked)
		m.pending = nil
		m.preview = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case ItemListView:
		m.itemList, cmd = m.itemList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		return playlistsFetchedMsg(m.catalog.AllCurrentUserPlaylists(m.ctx))
	}
}

func (m *Model) fetchItems(id string) tea.Cmd {
	opts := tasks.FetchOpts{Market: m.opts.Market, All: true}
	return func() tea.Msg {
		return itemsFetchedMsg(m.engine.FetchPlaylist(m.ctx, nil, id, opts))
	}
}

// startExport runs the bulk export in the background. Progress and the final result
// arrive as messages, so the model is only changed by Update.
func (m *Model) startExport(ids []string) tea.Cmd {
	run := &exportRun{
		progress: make(chan tasks.ProgressUpdate, 50),
		done:     make(chan exportComplete, 1),
	}
	m.run = run

	engine, ctx, opts := m.engine, m.ctx, m.opts
	go func() {
		result, err := engine.BulkExport(ctx, run.progress, ids, opts)
		close(run.progress)
		run.done <- exportComplete{result, err}
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	run := m.run
	if run == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-run.progress
		if !ok {
			out := <-run.done
			return exportCompleteMsg(out.result, out.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.preview, m.keys.mark, m.keys.export, m.keys.quit}
	status := ""
	if n := len(m.marked); n > 0 {
		status = styles.mark.Render(fmt.Sprintf("%d marked", n)) + "\n"
	}
	return fmt.Sprintf("%s\n\n%s%s", m.playlistList.View(), status, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderItemList() string {
	helpKeys := []key.Binding{m.keys.export, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.itemList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Export %d playlist(s)?", len(m.pending)))

	names := lo.FilterMap(m.playlists, func(p models.SimplePlaylist, _ int) (string, bool) {
		return "  • " + p.Name, lo.Contains(m.pending, p.ID)
	})
	if len(names) == 0 {
		names = lo.Map(m.pending, func(id string, _ int) string { return "  • " + id })
	}

	dir := m.opts.OutputDir
	if dir == "" {
		dir = "spotify_export_{epoch}"
	}
	info := fmt.Sprintf("%s\n\nFormat: %s\nDirectory: %s\n", strings.Join(names, "\n"), m.opts.Format, dir)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderExport() string {
	title := styles.title.Render("Exporting Playlists")
	step := fmt.Sprintf("%d/%d", m.progress.Step, m.progress.Total)
	return fmt.Sprintf("%s\n\n%s\n%s", title, step, m.progress.Message)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Export failed: %v", m.err)) + "\n\n" + helpView
	}
	if m.result == nil {
		return styles.err.Render("No result available") + "\n\n" + helpView
	}

	title := styles.ok.Render("✓ Export Complete")
	if m.result.FailedExports > 0 {
		title = styles.warn.Render("Export finished with failures")
	}
	info := fmt.Sprintf("\nExported: %d/%d\nDirectory: %s\nManifest: %s",
		m.result.SuccessfulExports, m.result.TotalPlaylists, m.result.OutputDirectory, m.result.ManifestPath)

	var failed string
	for _, res := range m.result.Results {
		if !res.Success {
			failed += fmt.Sprintf("\n  • %s: %s", res.PlaylistName, res.Message)
		}
	}
	if failed != "" {
		failed = "\n\n" + styles.warn.Render("Failed:") + failed
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
