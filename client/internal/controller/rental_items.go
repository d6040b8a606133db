package controller

import (
	"context"
	"strconv"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/viewstate"
	"github.com/maynagashev/inventory/models"
)

// RentalItemSelection - предмет, выбранный в списке для перехода к редактированию.
type RentalItemSelection struct {
	CategoryID   int64
	RentalItemID int64
}

// RentalItemsState - список предметов категории, подтверждение удаления и выбор.
type RentalItemsState struct {
	CategoryID int64
	viewstate.ListState[models.RentalItem]
	Delete   viewstate.DeleteTarget
	Selected RentalItemSelection
}

func rentalItemsList(s *RentalItemsState) *viewstate.Status   { return &s.ListState.Status }
func rentalItemsDelete(s *RentalItemsState) *viewstate.Status { return &s.Delete.Status }

// RentalItems - контроллер списка предметов одной категории.
type RentalItems struct {
	base[RentalItemsState]
	gw api.RentalItemsAPI
}

// NewRentalItems берет id категории из параметров навигации и сразу загружает список.
func NewRentalItems(ctx context.Context, params Params, gw api.RentalItemsAPI, opts ...Option) *RentalItems {
	initial := RentalItemsState{CategoryID: params.ID(ParamCategoryID)}
	c := &RentalItems{
		base: newBase(ctx, initial, "rental_items", opts),
		gw:   gw,
	}
	c.scope.Go(c.Fetch)
	return c
}

// Fetch загружает предметы категории и заменяет ими Items целиком.
func (c *RentalItems) Fetch(ctx context.Context) {
	categoryID := c.State().CategoryID
	c.run(ctx, "rental_items.fetch", rentalItemsList,
		func(ctx context.Context) (func(RentalItemsState) RentalItemsState, error) {
			items, err := c.gw.RentalItems(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			return func(s RentalItemsState) RentalItemsState {
				s.Items = items
				return s
			}, nil
		})
}

// Select запоминает выбранный предмет.
func (c *RentalItems) Select(rentalItemID int64) {
	c.update(func(s RentalItemsState) RentalItemsState {
		s.Selected = RentalItemSelection{CategoryID: s.CategoryID, RentalItemID: rentalItemID}
		return s
	})
}

// RequestDelete запрашивает подтверждение удаления предмета id.
func (c *RentalItems) RequestDelete(id int64) {
	c.update(func(s RentalItemsState) RentalItemsState {
		s.Delete.TargetID = id
		return s
	})
}

// DismissDelete отменяет удаление без обращения к серверу.
func (c *RentalItems) DismissDelete() {
	c.update(func(s RentalItemsState) RentalItemsState {
		s.Delete.TargetID = 0
		return s
	})
}

// ConfirmDelete удаляет выбранный предмет и убирает его из локального списка.
func (c *RentalItems) ConfirmDelete(ctx context.Context) {
	id := c.State().Delete.TargetID
	if id == 0 {
		return
	}
	c.run(ctx, "rental_items.delete:"+strconv.FormatInt(id, 10), rentalItemsDelete,
		func(ctx context.Context) (func(RentalItemsState) RentalItemsState, error) {
			if err := c.gw.DeleteRentalItem(ctx, id); err != nil {
				return nil, err
			}
			return func(s RentalItemsState) RentalItemsState {
				s.ListState = s.Without(func(it models.RentalItem) bool { return it.ID == id })
				s.Delete.TargetID = 0
				if s.Selected.RentalItemID == id {
					s.Selected = RentalItemSelection{}
				}
				return s
			}, nil
		})
}

// ClearError очищает ошибку загрузки списка.
func (c *RentalItems) ClearError() { c.clear(rentalItemsList) }

// ClearDeleteError очищает ошибку удаления.
func (c *RentalItems) ClearDeleteError() { c.clear(rentalItemsDelete) }

// RentalItemFormState - форма добавления или редактирования предмета.
type RentalItemFormState struct {
	ID         int64
	CategoryID int64
	Name       string
	Done       bool
	viewstate.Status
}

func rentalItemForm(s *RentalItemFormState) *viewstate.Status { return &s.Status }

// CanSubmit сообщает, заполнена ли форма.
func (s RentalItemFormState) CanSubmit() bool {
	return s.Name != ""
}

type rentalItemFormBase struct {
	base[RentalItemFormState]
	completion
	gw api.RentalItemsAPI
}

// SetName меняет введенное имя.
func (c *rentalItemFormBase) SetName(name string) {
	c.update(func(s RentalItemFormState) RentalItemFormState {
		s.Name = name
		return s
	})
}

// ResetDone сбрасывает признак завершения.
func (c *rentalItemFormBase) ResetDone() {
	c.sig.Drain()
	c.update(func(s RentalItemFormState) RentalItemFormState {
		s.Done = false
		return s
	})
}

// ClearError очищает ошибку формы.
func (c *rentalItemFormBase) ClearError() { c.clear(rentalItemForm) }

func (c *rentalItemFormBase) markDone(s RentalItemFormState) RentalItemFormState {
	s.Done = true
	c.sig.Fire()
	return s
}

// RentalItemAdd - контроллер формы создания предмета в категории.
type RentalItemAdd struct {
	rentalItemFormBase
	createdBy int64
}

// NewRentalItemAdd создает форму для категории из параметров навигации.
// createdBy - id текущего пользователя (0, если неизвестен).
func NewRentalItemAdd(params Params, gw api.RentalItemsAPI, createdBy int64, opts ...Option) *RentalItemAdd {
	initial := RentalItemFormState{CategoryID: params.ID(ParamCategoryID)}
	return &RentalItemAdd{
		rentalItemFormBase: rentalItemFormBase{
			base: newBase(context.Background(), initial, "rental_item_add", opts),
			gw:   gw,
		},
		createdBy: createdBy,
	}
}

// Submit создает предмет.
func (c *RentalItemAdd) Submit(ctx context.Context) {
	st := c.State()
	if err := required(field{"rental_item_name", st.Name}); err != nil {
		c.fail(rentalItemForm, err)
		return
	}
	categoryID, name := st.CategoryID, st.Name
	c.run(ctx, "rental_item.create", rentalItemForm,
		func(ctx context.Context) (func(RentalItemFormState) RentalItemFormState, error) {
			if _, err := c.gw.CreateRentalItem(ctx, categoryID, name, c.createdBy); err != nil {
				return nil, err
			}
			return c.markDone, nil
		})
}

// RentalItemEdit - контроллер формы редактирования предмета.
type RentalItemEdit struct {
	rentalItemFormBase
}

// NewRentalItemEdit берет id предмета из параметров навигации и загружает его.
func NewRentalItemEdit(ctx context.Context, params Params, gw api.RentalItemsAPI, opts ...Option) *RentalItemEdit {
	initial := RentalItemFormState{
		ID:         params.ID(ParamRentalItemID),
		CategoryID: params.ID(ParamCategoryID),
	}
	c := &RentalItemEdit{rentalItemFormBase{
		base: newBase(ctx, initial, "rental_item_edit", opts),
		gw:   gw,
	}}
	c.scope.Go(c.Load)
	return c
}

// Load загружает предмет в форму.
func (c *RentalItemEdit) Load(ctx context.Context) {
	id := c.State().ID
	c.run(ctx, "rental_item.get", rentalItemForm,
		func(ctx context.Context) (func(RentalItemFormState) RentalItemFormState, error) {
			item, err := c.gw.RentalItem(ctx, id)
			if err != nil {
				return nil, err
			}
			return func(s RentalItemFormState) RentalItemFormState {
				s.Name = item.Name
				if item.CategoryID != 0 {
					s.CategoryID = item.CategoryID
				}
				return s
			}, nil
		})
}

// Submit сохраняет новое имя. При ошибке введенное имя остается в форме.
func (c *RentalItemEdit) Submit(ctx context.Context) {
	st := c.State()
	if err := required(field{"rental_item_name", st.Name}); err != nil {
		c.fail(rentalItemForm, err)
		return
	}
	id, name := st.ID, st.Name
	c.run(ctx, "rental_item.update", rentalItemForm,
		func(ctx context.Context) (func(RentalItemFormState) RentalItemFormState, error) {
			if _, err := c.gw.UpdateRentalItem(ctx, id, name); err != nil {
				return nil, err
			}
			return func(s RentalItemFormState) RentalItemFormState {
				s.Name = name
				return c.markDone(s)
			}, nil
		})
}
