package tui

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/inventory/client/internal/controller"
	"github.com/maynagashev/inventory/models"
)

// prepareNameInput очищает поле имени и ставит на него фокус.
func (m *model) prepareNameInput(value string) {
	m.nameInput.SetValue(value)
	m.nameInput.Focus()
}

// openCategoryAdd открывает форму создания категории.
func (m *model) openCategoryAdd() tea.Cmd {
	m.state = categoryAddScreen
	c := controller.NewCategoryAdd(m.apiClient)
	m.categoryForm = c
	m.prepareNameInput("")
	slog.Info("Переход к созданию категории")
	return tea.Batch(subscribe(m, c.Subscribe, c.Close), textinput.Blink)
}

// openCategoryEdit открывает форму редактирования категории. Имя подгружается с сервера.
func (m *model) openCategoryEdit(cat models.Category) tea.Cmd {
	m.state = categoryEditScreen
	params := controller.Params{controller.ParamCategoryID: strconv.FormatInt(cat.ID, 10)}
	c := controller.NewCategoryEdit(m.ctx, params, m.apiClient)
	m.categoryForm = c
	m.prepareNameInput(cat.Name)
	slog.Info("Переход к редактированию категории", "category_id", cat.ID)
	return tea.Batch(subscribe(m, c.Subscribe, c.Close), textinput.Blink)
}

// updateCategoryForm обрабатывает ввод в форме категории.
func (m *model) updateCategoryForm(msg tea.Msg) tea.Cmd {
	return m.updateNameForm(msg, m.categoryForm.SetName,
		func() tea.Cmd {
			if !m.categoryForm.State().CanSubmit() {
				return m.setStatusMessage("Введите название категории")
			}
			return m.runCmd("category.submit", m.categoryForm.Submit)
		},
		m.openCategories,
	)
}

// syncCategoryForm реагирует на новое состояние формы категории.
func (m *model) syncCategoryForm() tea.Cmd {
	st := m.categoryForm.State()
	if st.Done {
		m.categoryForm.ResetDone()
		return tea.Batch(m.openCategories(), m.setStatusMessage("Категория сохранена"))
	}
	return m.showError(st.Error, m.categoryForm.ClearError)
}

// openRentalItemAdd открывает форму создания предмета в текущей категории.
func (m *model) openRentalItemAdd() tea.Cmd {
	m.state = rentalItemAddScreen
	params := controller.Params{controller.ParamCategoryID: strconv.FormatInt(m.currentCategory.ID, 10)}
	c := controller.NewRentalItemAdd(params, m.apiClient, m.accountID)
	m.rentalItemForm = c
	m.prepareNameInput("")
	slog.Info("Переход к созданию предмета", "category_id", m.currentCategory.ID)
	return tea.Batch(subscribe(m, c.Subscribe, c.Close), textinput.Blink)
}

// openRentalItemEdit открывает форму редактирования выбранного предмета.
func (m *model) openRentalItemEdit(sel controller.RentalItemSelection, name string) tea.Cmd {
	m.state = rentalItemEditScreen
	params := controller.Params{
		controller.ParamCategoryID:   strconv.FormatInt(sel.CategoryID, 10),
		controller.ParamRentalItemID: strconv.FormatInt(sel.RentalItemID, 10),
	}
	c := controller.NewRentalItemEdit(m.ctx, params, m.apiClient)
	m.rentalItemForm = c
	m.prepareNameInput(name)
	slog.Info("Переход к редактированию предмета", "rental_item_id", sel.RentalItemID)
	return tea.Batch(subscribe(m, c.Subscribe, c.Close), textinput.Blink)
}

// updateRentalItemForm обрабатывает ввод в форме предмета.
func (m *model) updateRentalItemForm(msg tea.Msg) tea.Cmd {
	back := func() tea.Cmd { return m.openRentalItems(m.currentCategory) }
	return m.updateNameForm(msg, m.rentalItemForm.SetName,
		func() tea.Cmd {
			if !m.rentalItemForm.State().CanSubmit() {
				return m.setStatusMessage("Введите название предмета")
			}
			return m.runCmd("rental_item.submit", m.rentalItemForm.Submit)
		},
		back,
	)
}

// syncRentalItemForm реагирует на новое состояние формы предмета.
func (m *model) syncRentalItemForm() tea.Cmd {
	st := m.rentalItemForm.State()
	if st.Done {
		m.rentalItemForm.ResetDone()
		return tea.Batch(m.openRentalItems(m.currentCategory), m.setStatusMessage("Предмет сохранен"))
	}
	return m.showError(st.Error, m.rentalItemForm.ClearError)
}

// updateNameForm - общий обработчик формы с одним полем имени.
func (m *model) updateNameForm(
	msg tea.Msg,
	setName func(string),
	submit func() tea.Cmd,
	back func() tea.Cmd,
) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.nameInput.Blur()
			return back()
		case keyEnter:
			// В контроллер уходит то, что видит пользователь
			setName(m.nameInput.Value())
			return submit()
		}
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	setName(m.nameInput.Value())
	return cmd
}

// viewNameForm отображает форму с одним полем имени.
func (m *model) viewNameForm(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.nameInput.View() + "\n")
	return b.String()
}
