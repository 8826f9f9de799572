package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/tui/keymap"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/tui/messages"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/tui/styles"
	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// DefaultPollInterval is how often the view refreshes the sync status.
const DefaultPollInterval = 200 * time.Millisecond

// SyncView runs a sync and shows a spinner with the resource being
// fetched until it finishes. It follows the Elm architecture and
// implements tea.Model.
type SyncView struct {
	ports   *Ports
	request domain.SyncRequest

	ctx    context.Context
	cancel context.CancelFunc

	styles  *styles.Styles
	keys    *keymap.KeyMap
	spinner spinner.Model

	pollEvery time.Duration
	now       func() time.Time

	status    domain.SyncStatus
	run       *domain.SyncRun
	err       error
	done      bool
	cancelled bool
}

// NewSyncView creates a progress view for one sync request.
func NewSyncView(ports *Ports, req domain.SyncRequest) (*SyncView, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPorts, err)
	}

	s := styles.DefaultStyles()
	v := &SyncView{
		ports:   ports,
		request: req,
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(s.Spinner),
		),
		pollEvery: DefaultPollInterval,
		now:       time.Now,
	}
	v.ctx, v.cancel = context.WithCancel(context.Background())
	return v, nil
}

// WithContext derives the sync's context from ctx.
func (v *SyncView) WithContext(ctx context.Context) *SyncView {
	v.cancel()
	v.ctx, v.cancel = context.WithCancel(ctx)
	return v
}

// Init starts the sync, the spinner and status polling.
func (v *SyncView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.startSync(), v.poll())
}

func (v *SyncView) startSync() tea.Cmd {
	return func() tea.Msg {
		run, err := v.ports.Sync.Sync(v.ctx, v.request)
		return messages.SyncFinished{Run: run, Err: err}
	}
}

func (v *SyncView) poll() tea.Cmd {
	return tea.Tick(v.pollEvery, func(time.Time) tea.Msg {
		return messages.StatusPolled{Status: v.ports.Sync.Status()}
	})
}

// Update handles messages.
func (v *SyncView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Quit) && !v.cancelled {
			// The program quits when the sync returns its cancelled run.
			v.cancelled = true
			v.cancel()
		}
		return v, nil

	case messages.StatusPolled:
		if v.done {
			return v, nil
		}
		v.status = msg.Status
		return v, v.poll()

	case messages.SyncFinished:
		v.done = true
		v.run = msg.Run
		v.err = msg.Err
		v.cancel()
		return v, tea.Quit

	case spinner.TickMsg:
		if v.done {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the progress line. It renders nothing once the sync is
// done; the caller prints the summary.
func (v *SyncView) View() string {
	if v.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.spinner.View())
	b.WriteString(" ")

	switch {
	case v.cancelled:
		b.WriteString(v.styles.Warning.Render("Cancelling..."))
	case v.status.Running && v.status.Resource != "":
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Syncing %s", v.status.Resource)))
		if v.status.CompanyID != 0 {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" for company %d", v.status.CompanyID)))
		}
	default:
		b.WriteString(v.styles.Normal.Render("Starting sync"))
	}

	if v.status.Running {
		detail := fmt.Sprintf("  %s records", humanize.Comma(int64(v.status.RecordsWritten)))
		if !v.status.StartedAt.IsZero() {
			detail += fmt.Sprintf(" · %s", v.now().Sub(v.status.StartedAt).Round(time.Second))
		}
		b.WriteString(v.styles.Muted.Render(detail))
	}

	b.WriteString("\n")
	for _, binding := range v.keys.ShortHelp() {
		help := binding.Help()
		b.WriteString(v.styles.Help.Render(help.Key + " " + help.Desc))
	}
	b.WriteString("\n")
	return b.String()
}

// Run shows the view on out until the sync finishes and returns the
// sync's result.
func (v *SyncView) Run(out io.Writer) (*domain.SyncRun, error) {
	defer v.cancel()

	p := tea.NewProgram(v, tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	return v.run, v.err
}

// Result returns the finished sync's run and error.
func (v *SyncView) Result() (*domain.SyncRun, error) {
	return v.run, v.err
}

// Done reports whether the sync has returned.
func (v *SyncView) Done() bool {
	return v.done
}

// Cancelled reports whether the user asked to cancel.
func (v *SyncView) Cancelled() bool {
	return v.cancelled
}
