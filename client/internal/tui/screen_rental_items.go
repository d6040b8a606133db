package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/inventory/client/internal/controller"
	"github.com/maynagashev/inventory/models"
)

// openRentalItems открывает предметы категории cat.
func (m *model) openRentalItems(cat models.Category) tea.Cmd {
	m.state = rentalItemsScreen
	m.currentCategory = cat
	params := controller.Params{controller.ParamCategoryID: strconv.FormatInt(cat.ID, 10)}
	m.rentalItems = controller.NewRentalItems(m.ctx, params, m.apiClient)
	m.rentalItemList.Title = fmt.Sprintf("Предметы в '%s'", cat.Name)
	slog.Info("Переход к предметам категории", "category_id", cat.ID)
	return subscribe(m, m.rentalItems.Subscribe, m.rentalItems.Close)
}

// selectedRentalItem возвращает выбранный в списке предмет.
func (m *model) selectedRentalItem() (models.RentalItem, bool) {
	item, ok := m.rentalItemList.SelectedItem().(rentalItemItem)
	if !ok {
		return models.RentalItem{}, false
	}
	return item.item, true
}

// updateRentalItemsScreen обрабатывает сообщения для экрана предметов.
func (m *model) updateRentalItemsScreen(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if isKey && m.rentalItems.State().Delete.Pending() {
		return m.handleDeleteConfirmKeys(keyMsg, m.rentalItems.ConfirmDelete, m.rentalItems.DismissDelete)
	}

	if !isKey || m.rentalItemList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.rentalItemList, cmd = m.rentalItemList.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case keyEsc:
		return m.openCategories()
	case keyRefresh:
		return m.runCmd("rental_items.fetch", m.rentalItems.Fetch)
	case keyAdd:
		return m.openRentalItemAdd()
	case keyEdit, keyEnter:
		if item, ok := m.selectedRentalItem(); ok {
			m.rentalItems.Select(item.ID)
			return m.openRentalItemEdit(m.rentalItems.State().Selected, item.Name)
		}
	case keyDelete:
		if item, ok := m.selectedRentalItem(); ok {
			m.rentalItems.RequestDelete(item.ID)
		}
	default:
		var cmd tea.Cmd
		m.rentalItemList, cmd = m.rentalItemList.Update(msg)
		return cmd
	}
	return nil
}

// syncRentalItemsScreen переносит состояние контроллера в список.
func (m *model) syncRentalItemsScreen() tea.Cmd {
	st := m.rentalItems.State()
	items := make([]list.Item, len(st.Items))
	for i, it := range st.Items {
		items[i] = rentalItemItem{item: it}
	}
	return tea.Batch(
		m.rentalItemList.SetItems(items),
		m.showError(st.Error, m.rentalItems.ClearError),
		m.showError(st.Delete.Error, m.rentalItems.ClearDeleteError),
	)
}

// viewRentalItemsScreen отображает список предметов и запрос подтверждения удаления.
func (m *model) viewRentalItemsScreen() string {
	var b strings.Builder
	b.WriteString(m.rentalItemList.View())
	if target := m.rentalItems.State().Delete.TargetID; target != 0 {
		name := "#" + strconv.FormatInt(target, 10)
		for _, it := range m.rentalItems.State().Items {
			if it.ID == target {
				name = "'" + it.Name + "'"
			}
		}
		b.WriteString("\n" + promptStyle.Render(fmt.Sprintf("Удалить предмет %s? (y/n)", name)))
	}
	return b.String()
}
