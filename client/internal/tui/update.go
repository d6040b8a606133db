package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		h, v := m.docStyle.GetFrameSize()
		listWidth := msg.Width - h
		listHeight := msg.Height - v - helpStatusHeightOffset
		m.categoryList.SetSize(listWidth, listHeight)
		m.rentalItemList.SetSize(listWidth, listHeight)
		m.nameInput.Width = listWidth - inputOffset
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		// Таймер старого сообщения не трогает более новое.
		if msg.gen != m.statusGen {
			return m, nil
		}
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	case stateChangedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		// Сначала снова ждем состояния: sync может сменить экран и подписку
		listen := m.listen
		cmd := m.syncScreen()
		if msg.gen == m.gen {
			return m, tea.Batch(cmd, listen)
		}
		return m, cmd

	case opFinishedMsg:
		return m, m.handleOpFinished(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.detach()
			return m, tea.Quit
		}
	}

	return m, m.updateScreen(msg)
}

// updateScreen передает сообщение обработчику текущего экрана.
func (m *model) updateScreen(msg tea.Msg) tea.Cmd {
	switch m.state {
	case loginScreen:
		return m.updateLoginScreen(msg)
	case registerScreen:
		return m.updateRegisterScreen(msg)
	case categoriesScreen:
		return m.updateCategoriesScreen(msg)
	case categoryAddScreen, categoryEditScreen:
		return m.updateCategoryForm(msg)
	case rentalItemsScreen:
		return m.updateRentalItemsScreen(msg)
	case rentalItemAddScreen, rentalItemEditScreen:
		return m.updateRentalItemForm(msg)
	default:
		slog.Warn("Сообщение для неизвестного экрана", "state", m.state)
		return nil
	}
}

// syncScreen приводит экран к текущему состоянию его контроллера.
func (m *model) syncScreen() tea.Cmd {
	switch m.state {
	case loginScreen:
		return m.syncLoginScreen()
	case registerScreen:
		return m.syncRegisterScreen()
	case categoriesScreen:
		return m.syncCategoriesScreen()
	case categoryAddScreen, categoryEditScreen:
		return m.syncCategoryForm()
	case rentalItemsScreen:
		return m.syncRentalItemsScreen()
	case rentalItemAddScreen, rentalItemEditScreen:
		return m.syncRentalItemForm()
	default:
		return nil
	}
}

// handleOpFinished обрабатывает завершение операций, после которых меняется экран.
func (m *model) handleOpFinished(msg opFinishedMsg) tea.Cmd {
	switch msg.op {
	case opLogout:
		if m.logout != nil {
			return m.finishLogout()
		}
		return nil
	case opLoginAccount:
		// Вход выполнен, даже если id пользователя узнать не удалось
		if msg.gen == m.gen && m.state == loginScreen {
			m.accountID = m.login.State().AccountID
			return m.openCategories()
		}
	}
	return nil
}
