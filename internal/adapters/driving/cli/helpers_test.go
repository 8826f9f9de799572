package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// mockWorkforceService records what commands ask for. Methods that are
// not overridden panic through the nil embedded API.
type mockWorkforceService struct {
	driven.WorkforceAPI

	defaultID int64
	identity  *domain.Identity
	companies []domain.Company
	users     []domain.User
	shifts    []domain.Shift
	event     *domain.Event
	err       error

	gotCompanyID   int64
	gotUserFilter  domain.UserFilter
	gotShiftFilter domain.ShiftFilter
	gotEventInput  domain.EventInput
}

func (m *mockWorkforceService) DefaultCompanyID(_ context.Context) (int64, error) {
	return m.defaultID, nil
}

func (m *mockWorkforceService) Whoami(_ context.Context) (*domain.Identity, error) {
	return m.identity, m.err
}

func (m *mockWorkforceService) ListCompanies(_ context.Context, _ domain.ListOptions) ([]domain.Company, error) {
	return m.companies, m.err
}

func (m *mockWorkforceService) ListUsers(
	_ context.Context, companyID int64, filter domain.UserFilter,
) ([]domain.User, error) {
	m.gotCompanyID = companyID
	m.gotUserFilter = filter
	return m.users, m.err
}

func (m *mockWorkforceService) ListShifts(
	_ context.Context, companyID int64, filter domain.ShiftFilter,
) ([]domain.Shift, error) {
	m.gotCompanyID = companyID
	m.gotShiftFilter = filter
	return m.shifts, m.err
}

func (m *mockWorkforceService) CreateEvent(
	_ context.Context, companyID int64, input domain.EventInput,
) (*domain.Event, error) {
	m.gotCompanyID = companyID
	m.gotEventInput = input
	return m.event, m.err
}

// mockSettingsService is an in-memory driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	setKey   string
	setValue string
	err      error
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setKey, m.setValue = key, value
	return m.err
}

func (m *mockSettingsService) SetToken(token string) error {
	m.settings.API.Token = token
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ConfigPath() string {
	return "/tmp/7shifts/config.toml"
}

// useServices installs s for the duration of the test.
func useServices(t *testing.T, s Services) {
	t.Helper()
	old := Services{
		Workforce: workforceService,
		Settings:  settingsService,
		OpenSync:  openSync,
		Watcher:   configWatcher,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(old) })
}

// executeCommand runs the root command with args and returns what it
// printed. Flags are reset first since cobra keeps their values between
// runs, and output is never treated as a terminal.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	oldTerminal := isTerminal
	isTerminal = func(io.Writer) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerminal })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
