package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/controller"
	"github.com/maynagashev/inventory/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	loginScreen          screenState = iota // Экран входа
	registerScreen                          // Экран регистрации
	categoriesScreen                        // Список категорий
	categoryAddScreen                       // Создание категории
	categoryEditScreen                      // Редактирование категории
	rentalItemsScreen                       // Предметы категории
	rentalItemAddScreen                     // Создание предмета
	rentalItemEditScreen                    // Редактирование предмета
)

func (s screenState) String() string {
	switch s {
	case loginScreen:
		return "loginScreen"
	case registerScreen:
		return "registerScreen"
	case categoriesScreen:
		return "categoriesScreen"
	case categoryAddScreen:
		return "categoryAddScreen"
	case categoryEditScreen:
		return "categoryEditScreen"
	case rentalItemsScreen:
		return "rentalItemsScreen"
	case rentalItemAddScreen:
		return "rentalItemAddScreen"
	case rentalItemEditScreen:
		return "rentalItemEditScreen"
	default:
		return fmt.Sprintf("unknownScreen(%d)", int(s))
	}
}

// Константы для TUI.
const (
	defaultListWidth       = 80 // Стандартная ширина терминала для списка
	defaultListHeight      = 20 // Стандартная высота терминала для списка
	inputOffset            = 4  // Отступ для полей ввода
	helpStatusHeightOffset = 3  // Высота строк помощи и статуса
	statusMessageTimeout   = 3 * time.Second

	keyEnter    = "enter"
	keyQuit     = "q"
	keyEsc      = "esc"
	keyEdit     = "e"
	keyAdd      = "a"
	keyDelete   = "d"
	keyRefresh  = "r"
	keyLogout   = "L"
	keyRegister = "ctrl+r"
	keyYes      = "y"
	keyNo       = "n"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
)

// categoryItem - категория в списке. Реализует list.Item.
type categoryItem struct {
	category models.Category
}

func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string { return fmt.Sprintf("ID: %d", i.category.ID) }
func (i categoryItem) FilterValue() string { return i.category.Name }

// rentalItemItem - предмет в списке. Реализует list.Item.
type rentalItemItem struct {
	item models.RentalItem
}

func (i rentalItemItem) Title() string       { return i.item.Name }
func (i rentalItemItem) Description() string { return fmt.Sprintf("ID: %d", i.item.ID) }
func (i rentalItemItem) FilterValue() string { return i.item.Name }

// stateChangedMsg приходит, когда контроллер текущего экрана опубликовал новое состояние.
// gen отбрасывает сообщения от контроллеров уже закрытых экранов.
type stateChangedMsg struct {
	gen int
}

// opFinishedMsg приходит после завершения операции контроллера.
type opFinishedMsg struct {
	gen int
	op  string
}

// Сообщение для очистки статуса.
type clearStatusMsg struct {
	gen int
}

// categoryForm - общий интерфейс контроллеров формы категории.
type categoryForm interface {
	State() controller.CategoryFormState
	SetName(name string)
	Submit(ctx context.Context)
	ResetDone()
	ClearError()
	Close()
}

// rentalItemForm - общий интерфейс контроллеров формы предмета.
type rentalItemForm interface {
	State() controller.RentalItemFormState
	SetName(name string)
	Submit(ctx context.Context)
	ResetDone()
	ClearError()
	Close()
}

// model представляет состояние TUI приложения.
type model struct {
	ctx       context.Context
	state     screenState
	apiClient api.Client
	sessions  controller.Sessions
	debugMode bool
	readOnly  bool  // хранилище сессии открыто только для чтения
	accountID int64 // id пользователя, автор новых предметов (0 - неизвестен)

	// Контроллеры экранов. Подписка есть только у контроллера текущего экрана.
	login          *controller.Login
	registration   *controller.Registration
	logout         *controller.Logout
	categories     *controller.Categories
	categoryForm   categoryForm
	rentalItems    *controller.RentalItems
	rentalItemForm rentalItemForm
	closeCurrent   func()  // закрывает контроллер текущего экрана
	listen         tea.Cmd // ждет следующего состояния контроллера текущего экрана
	gen            int     // поколение экрана, растет при каждой смене контроллера

	usernameInput   textinput.Model // Имя пользователя (вход/регистрация)
	passwordInput   textinput.Model // Пароль (вход/регистрация)
	focusedField    int             // Активное поле на экранах входа/регистрации
	nameInput       textinput.Model // Имя категории или предмета в формах
	categoryList    list.Model
	rentalItemList  list.Model
	spinner         spinner.Model
	currentCategory models.Category // Категория, предметы которой открыты
	statusMessage   string
	// statusGen растет с каждым новым статусным сообщением.
	statusGen       int
	statusIsError   bool
	docStyle        lipgloss.Style
	helpTextMap     map[screenState]string
}
