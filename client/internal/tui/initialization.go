package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/controller"
)

// Константы, используемые при инициализации.
const (
	initPasswordCharLimit = 156
	initUserCharLimit     = 128
	initNameCharLimit     = 255
	initInputWidth        = 30

	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2
)

// initUsernameInput инициализирует поле ввода имени пользователя.
func initUsernameInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Имя пользователя"
	ti.CharLimit = initUserCharLimit
	ti.Width = initInputWidth
	ti.Focus()
	return ti
}

// initPasswordInput инициализирует поле ввода пароля.
func initPasswordInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Пароль"
	ti.CharLimit = initPasswordCharLimit
	ti.Width = initInputWidth
	ti.EchoMode = textinput.EchoPassword
	return ti
}

// initNameInput инициализирует поле ввода имени в формах.
func initNameInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Название"
	ti.CharLimit = initNameCharLimit
	ti.Width = defaultListWidth - inputOffset
	return ti
}

// initResourceList инициализирует список категорий или предметов.
func initResourceList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderLeftForeground(lipgloss.Color("212"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("240")).
		BorderLeftForeground(lipgloss.Color("212"))

	l := list.New([]list.Item{}, delegate, defaultListWidth, defaultListHeight)
	l.Title = title
	l.SetShowHelp(false) // Справку рисуем сами
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initHelpTextMap возвращает подсказки по клавишам для каждого экрана.
func initHelpTextMap() map[screenState]string {
	return map[screenState]string{
		loginScreen:          "(Tab: поле, Enter: войти, Ctrl+R: регистрация, Ctrl+C: выход)",
		registerScreen:       "(Tab: поле, Enter: зарегистрироваться, Esc: назад)",
		categoriesScreen:     "(Enter: предметы, a: добавить, e: изменить, d: удалить, r: обновить, L: выйти из аккаунта, q: выход)",
		categoryAddScreen:    "(Enter: создать, Esc: отмена)",
		categoryEditScreen:   "(Enter: сохранить, Esc: отмена)",
		rentalItemsScreen:    "(a: добавить, e/Enter: изменить, d: удалить, r: обновить, Esc: к категориям)",
		rentalItemAddScreen:  "(Enter: создать, Esc: отмена)",
		rentalItemEditScreen: "(Enter: сохранить, Esc: отмена)",
	}
}

// initModel создает начальную модель. Экран входа открывается в Init.
func initModel(ctx context.Context, apiClient api.Client, sessions controller.Sessions, debugMode bool) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		ctx:            ctx,
		state:          loginScreen,
		apiClient:      apiClient,
		sessions:       sessions,
		debugMode:      debugMode,
		usernameInput:  initUsernameInput(),
		passwordInput:  initPasswordInput(),
		nameInput:      initNameInput(),
		categoryList:   initResourceList("Категории"),
		rentalItemList: initResourceList("Предметы"),
		spinner:        s,
		docStyle:       lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal),
		helpTextMap:    initHelpTextMap(),
	}
}
