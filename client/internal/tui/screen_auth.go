package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/inventory/client/internal/controller"
)

// openLogin открывает экран входа. Контроллер сам проверяет сохраненную сессию.
func (m *model) openLogin(username string) tea.Cmd {
	m.state = loginScreen
	m.login = controller.NewLogin(m.ctx, m.apiClient, m.sessions)
	m.resetCredentials(username)
	slog.Info("Переход к экрану входа")
	return subscribe(m, m.login.Subscribe, m.login.Close)
}

// openRegister открывает экран регистрации.
func (m *model) openRegister() tea.Cmd {
	m.state = registerScreen
	m.registration = controller.NewRegistration(m.apiClient)
	m.resetCredentials(m.usernameInput.Value())
	slog.Info("Переход к экрану регистрации")
	return subscribe(m, m.registration.Subscribe, m.registration.Close)
}

// updateLoginScreen обрабатывает ввод данных для входа.
func (m *model) updateLoginScreen(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyRegister {
		return m.openRegister()
	}
	submit := func() tea.Cmd {
		if !m.login.State().CanSubmit() {
			return m.setStatusMessage("Введите имя пользователя и пароль")
		}
		return m.runCmd("login", m.login.Submit)
	}
	return m.handleCredentialsInput(msg, submit, func(username, password string) {
		m.login.SetUsername(username)
		m.login.SetPassword(password)
	})
}

// syncLoginScreen реагирует на новое состояние контроллера входа.
func (m *model) syncLoginScreen() tea.Cmd {
	st := m.login.State()
	if st.Error != "" {
		return m.showError(st.Error, m.login.ClearError)
	}
	if st.AccountID != 0 {
		m.accountID = st.AccountID
		slog.Info("Сессия активна, переход к категориям", "account_id", st.AccountID)
		return m.openCategories()
	}
	if st.LoginOK {
		m.login.ResetLoginOK()
		m.passwordInput.SetValue("")
		// Узнаем id пользователя для created_by_user_id
		return m.runCmd(opLoginAccount, m.login.ResolveAccount)
	}
	return nil
}

// viewLoginScreen отображает экран ввода данных для входа.
func (m *model) viewLoginScreen() string {
	return m.viewCredentialsScreen("Вход в учетную запись")
}

// updateRegisterScreen обрабатывает ввод данных для регистрации.
func (m *model) updateRegisterScreen(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyEsc {
		return m.openLogin(m.usernameInput.Value())
	}
	submit := func() tea.Cmd {
		if !m.registration.State().CanSubmit() {
			return m.setStatusMessage("Введите имя пользователя и пароль")
		}
		return m.runCmd("register", m.registration.Submit)
	}
	return m.handleCredentialsInput(msg, submit, func(username, password string) {
		m.registration.SetUsername(username)
		m.registration.SetPassword(password)
	})
}

// syncRegisterScreen реагирует на новое состояние контроллера регистрации.
func (m *model) syncRegisterScreen() tea.Cmd {
	st := m.registration.State()
	if st.Error != "" {
		return m.showError(st.Error, m.registration.ClearError)
	}
	if st.RegistrationOK {
		username := st.Username
		return tea.Batch(m.openLogin(username), m.setStatusMessage("Регистрация выполнена, войдите"))
	}
	return nil
}

// viewRegisterScreen отображает экран регистрации.
func (m *model) viewRegisterScreen() string {
	return m.viewCredentialsScreen("Регистрация")
}

// viewCredentialsScreen отображает общий экран ввода имени и пароля.
func (m *model) viewCredentialsScreen(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.usernameInput.View() + "\n")
	b.WriteString(m.passwordInput.View() + "\n")
	return b.String()
}

// startLogout завершает сессию. Экран входа открывается после завершения операции.
// Повторное нажатие, пока выход еще выполняется, игнорируется.
func (m *model) startLogout() tea.Cmd {
	if m.logout != nil {
		return nil
	}
	m.logout = controller.NewLogout(m.apiClient, m.sessions)
	slog.Info("Выход из учетной записи")
	return m.runCmd(opLogout, m.logout.Logout)
}

// finishLogout обрабатывает результат выхода.
func (m *model) finishLogout() tea.Cmd {
	st := m.logout.State()
	defer func() {
		m.logout.Close()
		m.logout = nil
	}()
	switch {
	case st.Error != "":
		return m.showError(st.Error, m.logout.ClearError)
	case st.LogoutOK:
		m.accountID = 0
		return tea.Batch(m.openLogin(""), m.setStatusMessage("Вы вышли из учетной записи"))
	default:
		m.accountID = 0
		return tea.Batch(m.openLogin(""), m.setStatusMessage("Активной сессии не было"))
	}
}
