// Package tui is the terminal front end of the gallery. It drives the same
// app.Gallery as the web page, so selection and submission rules match.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quote-gallery/internal/app"
	"github.com/jsamuelsen/quote-gallery/internal/domain"
)

const (
	ageKey       = "age"
	tableHeight  = 8
	charColWidth = 22
	moreColWidth = 9
)

type focusArea int

const (
	focusCarousel focusArea = iota
	focusTable
)

type loadedMsg struct {
	state app.ViewState
}

type submittedMsg struct {
	alert app.Alert
	err   error
}

// Model is the bubbletea model for the gallery.
type Model struct {
	ctx     context.Context
	gallery *app.Gallery
	logger  *slog.Logger
	keys    keyMap
	styles  styles
	title   string

	width  int
	height int

	state      app.ViewState
	loading    bool
	submitting bool
	focus      focusArea
	alert      *app.Alert

	spinner  spinner.Model
	carousel carousel
	table    table.Model
	help     help.Model

	form *huh.Form
	age  *string
}

// New creates a model that loads the gallery on Init. ctx bounds the gallery
// calls the model issues.
func New(ctx context.Context, gallery *app.Gallery, title string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	t := table.New(
		table.WithColumns(columns(0)),
		table.WithHeight(tableHeight),
	)

	return Model{
		ctx:     ctx,
		gallery: gallery,
		logger:  logger,
		keys:    defaultKeys,
		styles:  defaultStyles(),
		title:   title,
		loading: true,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		table:   t,
		help:    help.New(),
		state:   app.ViewState{SelectedIndex: -1},
	}
}

// Init starts the spinner and the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{state: m.gallery.Load(m.ctx)}
	}
}

func (m Model) submit(age string) tea.Cmd {
	return func() tea.Msg {
		alert, err := m.gallery.Submit(m.ctx, app.AgeForm{Age: age})

		return submittedMsg{alert: alert, err: err}
	}
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetWidth(msg.Width)
		m.help.Width = msg.Width

		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.submitting {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case loadedMsg:
		m.loading = false
		m.state = msg.state
		m.table.SetRows(rows(msg.state.Records))

		return m, nil

	case submittedMsg:
		m.submitting = false
		m.form = nil
		m.age = nil
		m.state = m.gallery.Snapshot()
		m.alert = alertFor(msg)

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != nil {
		m.alert = nil
		return m, nil
	}

	if m.submitting {
		return m, nil
	}

	if m.form != nil {
		if key.Matches(msg, m.keys.Close) {
			m.closeModal()
			return m, nil
		}

		return m.updateForm(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		index := m.carousel.offset
		if m.focus == focusTable {
			index = m.table.Cursor()
		}

		return m.openModal(index)

	case m.focus == focusCarousel && key.Matches(msg, m.keys.Prev):
		m.carousel.prev(len(m.state.Records))
		return m, nil

	case m.focus == focusCarousel && key.Matches(msg, m.keys.Next):
		m.carousel.next(len(m.state.Records))
		return m, nil
	}

	if m.focus == focusTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusCarousel {
		m.focus = focusTable
		m.table.Focus()

		return
	}

	m.focus = focusCarousel
	m.table.Blur()
}

func (m Model) openModal(index int) (tea.Model, tea.Cmd) {
	state, err := m.gallery.Select(index)
	if err != nil {
		m.logger.DebugContext(m.ctx, "selection refused", slog.Int("index", index), slog.Any("error", err))
		return m, nil
	}

	m.state = state
	m.age = new(string)
	m.form = newAgeForm(m.age)

	return m, m.form.Init()
}

func (m *Model) closeModal() {
	m.form = nil
	m.age = nil
	m.state = m.gallery.Close()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		age := *m.age
		m.form = nil
		m.age = nil
		m.submitting = true

		return m, tea.Batch(m.submit(age), m.spinner.Tick)

	case huh.StateAborted:
		m.closeModal()
		return m, nil

	default:
		return m, cmd
	}
}

func newAgeForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(ageKey).
				Title("Age").
				Placeholder("How old are you?").
				Value(value).
				Validate(validateAge),
		),
	).WithShowHelp(false)
}

// validateAge reports the same message the web form shows.
func validateAge(s string) error {
	_, err := app.AgeForm{Age: s}.Validate()
	if err == nil {
		return nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errors.New(ve.Message)
	}

	return err
}

func alertFor(msg submittedMsg) *app.Alert {
	if msg.err != nil {
		return &app.Alert{Message: errorText(msg.err)}
	}

	alert := msg.alert

	return &alert
}

func errorText(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	if domain.IsConflict(err) {
		return "Another submission is already in progress"
	}

	return app.SubmitFailureMessage
}

func columns(width int) []table.Column {
	quoteWidth := max(width-charColWidth-moreColWidth-8, 20)

	return []table.Column{
		{Title: "Character", Width: charColWidth},
		{Title: "Quote", Width: quoteWidth},
		{Title: "Details", Width: moreColWidth},
	}
}

func rows(records []domain.QuoteRecord) []table.Row {
	out := make([]table.Row, len(records))
	for i, r := range records {
		out[i] = table.Row{string(r.Character), flatten(r.Quote), "enter"}
	}

	return out
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// View renders the model.
func (m Model) View() string {
	switch {
	case m.alert != nil:
		return m.place(m.viewAlert())
	case m.loading:
		return m.spinner.View() + " Loading..."
	case m.form != nil || m.submitting:
		return m.place(m.viewModal())
	default:
		return m.viewGallery()
	}
}

func (m Model) place(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m Model) viewGallery() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewCarousel())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.browseHelp())))

	return b.String()
}

func (m Model) viewCarousel() string {
	records := m.state.Records
	if len(records) == 0 {
		return m.styles.Muted.Render("No quotes")
	}

	width := m.width
	if width == 0 {
		width = mediumWidth - 1
	}

	n := visibleSlides(width)
	indices := m.carousel.window(len(records), n)
	cardWidth := max(width/n-4, 16)

	cards := make([]string, len(indices))
	for i, idx := range indices {
		style := m.styles.Card
		if i == 0 && m.focus == focusCarousel {
			style = m.styles.ActiveCard
		}

		r := records[idx]
		cards[i] = style.Width(cardWidth).Render(
			m.styles.Character.Render(string(r.Character)) + "\n" + r.Quote,
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) viewModal() string {
	var b strings.Builder

	if sel := m.state.Selected; sel != nil {
		b.WriteString(m.styles.Character.Render(string(sel.Character)))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(sel.Image))
		b.WriteString("\n\n")
		b.WriteString(sel.Quote)
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(m.spinner.View() + " Submitting...")
	} else if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.modalHelp())))
	}

	width := 60
	if m.width > 0 {
		width = min(width, m.width-4)
	}

	return m.styles.Modal.Width(width).Render(b.String())
}

func (m Model) viewAlert() string {
	style := m.styles.AlertFail
	if m.alert.Success {
		style = m.styles.AlertOK
	}

	return style.Render(
		m.alert.Message + "\n\n" + m.styles.Muted.Render(m.help.ShortHelpView([]key.Binding{m.keys.Dismiss})),
	)
}
