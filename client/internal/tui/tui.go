package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/controller"
)

//nolint:gochecknoglobals // Стили интерфейса
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true)
)

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.openLogin(""))
}

// setStatusMessage устанавливает статусное сообщение и запускает таймер для его очистки.
func (m *model) setStatusMessage(status string) tea.Cmd {
	m.statusMessage = status
	m.statusIsError = false
	m.statusGen++
	return clearStatusCmd(statusMessageTimeout, m.statusGen)
}

// showError показывает ошибку контроллера один раз. После показа ошибка очищается в контроллере.
func (m *model) showError(msg string, clear func()) tea.Cmd {
	if msg == "" {
		return nil
	}
	slog.Debug("Показ ошибки", "screen", m.state, "error", msg)
	clear()
	m.statusMessage = "Ошибка: " + msg
	m.statusIsError = true
	m.statusGen++
	return clearStatusCmd(statusMessageTimeout, m.statusGen)
}

// loading сообщает, выполняется ли операция контроллера текущего экрана.
func (m *model) loading() bool {
	switch m.state {
	case loginScreen:
		return m.login != nil && m.login.State().Loading
	case registerScreen:
		return m.registration != nil && m.registration.State().Loading
	case categoriesScreen:
		if m.categories == nil {
			return false
		}
		st := m.categories.State()
		return st.Loading || st.Delete.Loading
	case categoryAddScreen, categoryEditScreen:
		return m.categoryForm != nil && m.categoryForm.State().Loading
	case rentalItemsScreen:
		if m.rentalItems == nil {
			return false
		}
		st := m.rentalItems.State()
		return st.Loading || st.Delete.Loading
	case rentalItemAddScreen, rentalItemEditScreen:
		return m.rentalItemForm != nil && m.rentalItemForm.State().Loading
	default:
		return false
	}
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case loginScreen:
		return m.viewLoginScreen()
	case registerScreen:
		return m.viewRegisterScreen()
	case categoriesScreen:
		return m.viewCategoriesScreen()
	case categoryAddScreen:
		return m.viewNameForm("Новая категория")
	case categoryEditScreen:
		return m.viewNameForm("Редактирование категории")
	case rentalItemsScreen:
		return m.viewRentalItemsScreen()
	case rentalItemAddScreen:
		return m.viewNameForm(fmt.Sprintf("Новый предмет в категории '%s'", m.currentCategory.Name))
	case rentalItemEditScreen:
		return m.viewNameForm("Редактирование предмета")
	default:
		return "Неизвестное состояние!"
	}
}

// getDebugInfoString формирует отладочную информацию.
func (m *model) getDebugInfoString() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(" [State: %s]\n", m.state))
	b.WriteString(fmt.Sprintf(" [Account: %d]\n", m.accountID))
	b.WriteString(fmt.Sprintf(" [Category: %d]\n", m.currentCategory.ID))
	b.WriteString(fmt.Sprintf(" [Gen: %d]\n", m.gen))
	b.WriteString(fmt.Sprintf(" [Read-Only: %t]\n", m.readOnly))
	return b.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent := m.getMainContentView()
	help, ok := m.helpTextMap[m.state]
	if !ok {
		help = fmt.Sprintf("State: %s", m.state)
	}

	var footer strings.Builder
	if m.loading() {
		footer.WriteString("\n" + m.spinner.View() + " Загрузка...")
	}
	if m.statusMessage != "" || m.readOnly {
		footer.WriteString("\n")
		if m.statusIsError {
			footer.WriteString(errorStyle.Render(m.statusMessage))
		} else {
			footer.WriteString(m.statusMessage)
		}
		if m.readOnly {
			footer.WriteString(" [Read-Only]")
		}
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nОтладка:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	return fmt.Sprintf("%s\n%s%s", m.docStyle.Render(mainContent), subtleStyle.Render(help), footer.String())
}

// Options - параметры запуска TUI.
type Options struct {
	API      api.Client
	Sessions controller.Sessions
	Debug    bool
	ReadOnly bool // хранилище сессии занято другим процессом
}

// Start запускает TUI приложение и блокируется до выхода из него.
func Start(ctx context.Context, opts Options) error {
	if opts.API == nil || opts.Sessions == nil {
		return errors.New("не заданы клиент API или хранилище сессии")
	}
	m := initModel(ctx, opts.API, opts.Sessions, opts.Debug)
	m.readOnly = opts.ReadOnly
	defer m.detach()

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка при запуске TUI", "error", err)
		return fmt.Errorf("ошибка TUI: %w", err)
	}
	return nil
}
