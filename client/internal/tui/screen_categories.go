package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/inventory/client/internal/controller"
	"github.com/maynagashev/inventory/models"
)

// openCategories открывает список категорий. Контроллер загружает его сам.
func (m *model) openCategories() tea.Cmd {
	m.state = categoriesScreen
	m.categories = controller.NewCategories(m.ctx, m.apiClient)
	slog.Info("Переход к списку категорий")
	return subscribe(m, m.categories.Subscribe, m.categories.Close)
}

// selectedCategory возвращает выбранную в списке категорию.
func (m *model) selectedCategory() (models.Category, bool) {
	item, ok := m.categoryList.SelectedItem().(categoryItem)
	if !ok {
		return models.Category{}, false
	}
	return item.category, true
}

// updateCategoriesScreen обрабатывает сообщения для экрана списка категорий.
func (m *model) updateCategoriesScreen(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Подтверждение удаления перехватывает клавиши
	if isKey && m.categories.State().Delete.Pending() {
		return m.handleDeleteConfirmKeys(keyMsg, m.categories.ConfirmDelete, m.categories.DismissDelete)
	}

	// В режиме фильтрации клавиши принадлежат списку
	if !isKey || m.categoryList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.categoryList, cmd = m.categoryList.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case keyQuit:
		m.detach()
		return tea.Quit
	case keyRefresh:
		return m.runCmd("categories.fetch", m.categories.Fetch)
	case keyAdd:
		return m.openCategoryAdd()
	case keyLogout:
		return m.startLogout()
	case keyEdit:
		if cat, ok := m.selectedCategory(); ok {
			return m.openCategoryEdit(cat)
		}
	case keyDelete:
		if cat, ok := m.selectedCategory(); ok {
			m.categories.RequestDelete(cat.ID)
		}
	case keyEnter:
		if cat, ok := m.selectedCategory(); ok {
			return m.openRentalItems(cat)
		}
	default:
		var cmd tea.Cmd
		m.categoryList, cmd = m.categoryList.Update(msg)
		return cmd
	}
	return nil
}

// handleDeleteConfirmKeys обрабатывает y/n на запросе подтверждения удаления.
func (m *model) handleDeleteConfirmKeys(
	keyMsg tea.KeyMsg,
	confirm func(ctx context.Context),
	dismiss func(),
) tea.Cmd {
	switch keyMsg.String() {
	case keyYes, keyEnter:
		return m.runCmd("delete", confirm)
	case keyNo, keyEsc:
		dismiss()
	}
	return nil
}

// syncCategoriesScreen переносит состояние контроллера в список.
func (m *model) syncCategoriesScreen() tea.Cmd {
	st := m.categories.State()
	items := make([]list.Item, len(st.Items))
	for i, c := range st.Items {
		items[i] = categoryItem{category: c}
	}
	cmds := []tea.Cmd{m.categoryList.SetItems(items)}
	m.categoryList.Title = fmt.Sprintf("Категории (%d)", len(items))

	cmds = append(cmds,
		m.showError(st.Error, m.categories.ClearError),
		m.showError(st.Delete.Error, m.categories.ClearDeleteError),
	)
	return tea.Batch(cmds...)
}

// viewCategoriesScreen отображает список категорий и запрос подтверждения удаления.
func (m *model) viewCategoriesScreen() string {
	var b strings.Builder
	b.WriteString(m.categoryList.View())
	if target := m.categories.State().Delete.TargetID; target != 0 {
		b.WriteString("\n" + promptStyle.Render(
			fmt.Sprintf("Удалить категорию %s? (y/n)", m.categoryName(target))))
	}
	return b.String()
}

// categoryName возвращает имя категории из списка или ее id.
func (m *model) categoryName(id int64) string {
	for _, c := range m.categories.State().Items {
		if c.ID == id {
			return "'" + c.Name + "'"
		}
	}
	return "#" + strconv.FormatInt(id, 10)
}
