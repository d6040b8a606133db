package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Имена операций, по завершении которых экран что-то делает.
const (
	opLoginAccount = "login.account" // проверка аккаунта после входа
	opLogout       = "logout"
)

// runCmd выполняет операцию контроллера вне цикла обработки сообщений.
// Состояние меняется через подписку, opFinishedMsg лишь сообщает о завершении.
func (m *model) runCmd(op string, fn func(ctx context.Context)) tea.Cmd {
	ctx, gen := m.ctx, m.gen
	return func() tea.Msg {
		fn(ctx)
		return opFinishedMsg{gen: gen, op: op}
	}
}

// subscribe делает контроллер текущим: закрывает предыдущий и подписывается на новые состояния.
func subscribe[S any](m *model, sub func() (<-chan S, func()), closeFn func()) tea.Cmd {
	m.detach()
	m.gen++
	gen := m.gen

	ch, cancel := sub()
	m.closeCurrent = func() {
		cancel()
		closeFn()
	}
	m.listen = func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{gen: gen}
	}
	return m.listen
}

// detach закрывает контроллер текущего экрана.
func (m *model) detach() {
	if m.closeCurrent != nil {
		m.closeCurrent()
		m.closeCurrent = nil
	}
	m.listen = nil
}

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
// gen - поколение статусного сообщения, которое нужно очистить.
func clearStatusCmd(delay time.Duration, gen int) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}
