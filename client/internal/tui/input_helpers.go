package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Количество полей на экранах входа и регистрации (имя/пароль).
const numCredentialFields = 2

// focusCredentialField переводит фокус на поле idx.
func (m *model) focusCredentialField(idx int) {
	m.focusedField = idx
	if idx == 0 {
		m.passwordInput.Blur()
		m.usernameInput.Focus()
	} else {
		m.usernameInput.Blur()
		m.passwordInput.Focus()
	}
}

// resetCredentials очищает поля входа/регистрации и ставит фокус на имя.
func (m *model) resetCredentials(username string) {
	m.usernameInput.SetValue(username)
	m.passwordInput.SetValue("")
	m.focusCredentialField(0)
}

// handleCredentialsKeys обрабатывает Tab, Shift+Tab и Enter в полях имени и пароля.
// Возвращает команду и флаг, указывающий, была ли клавиша обработана.
func (m *model) handleCredentialsKeys(keyMsg tea.KeyMsg, onSubmit func() tea.Cmd) (tea.Cmd, bool) {
	switch keyMsg.String() {
	case keyTab:
		m.focusCredentialField((m.focusedField + 1) % numCredentialFields)
		return textinput.Blink, true
	case keyShiftTab:
		m.focusCredentialField((m.focusedField + numCredentialFields - 1) % numCredentialFields)
		return textinput.Blink, true
	case keyEnter:
		if m.focusedField == 0 {
			m.focusCredentialField(1)
			return textinput.Blink, true
		}
		return onSubmit(), true
	default:
		return nil, false
	}
}

// handleCredentialsInput обрабатывает ввод в полях имени и пароля.
// Значения полей после каждого изменения передаются в контроллер через sync.
func (m *model) handleCredentialsInput(msg tea.Msg, onSubmit func() tea.Cmd, sync func(username, password string)) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleCredentialsKeys(keyMsg, onSubmit); handled {
			return cmd
		}
	}

	var cmd tea.Cmd
	if m.focusedField == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	sync(m.usernameInput.Value(), m.passwordInput.Value())
	return cmd
}
