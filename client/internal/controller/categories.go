package controller

import (
	"context"
	"strconv"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/viewstate"
	"github.com/maynagashev/inventory/models"
)

// CategoriesState - список категорий и подтверждение удаления.
type CategoriesState struct {
	viewstate.ListState[models.Category]
	Delete viewstate.DeleteTarget
}

func categoriesList(s *CategoriesState) *viewstate.Status   { return &s.ListState.Status }
func categoriesDelete(s *CategoriesState) *viewstate.Status { return &s.Delete.Status }

// Categories - контроллер экрана списка категорий.
type Categories struct {
	base[CategoriesState]
	gw api.CategoriesAPI
}

// NewCategories создает контроллер и сразу запускает загрузку списка.
func NewCategories(ctx context.Context, gw api.CategoriesAPI, opts ...Option) *Categories {
	c := &Categories{
		base: newBase(ctx, CategoriesState{}, "categories", opts),
		gw:   gw,
	}
	c.scope.Go(c.Fetch)
	return c
}

// Fetch загружает список категорий и заменяет им Items целиком.
func (c *Categories) Fetch(ctx context.Context) {
	c.run(ctx, "categories.fetch", categoriesList,
		func(ctx context.Context) (func(CategoriesState) CategoriesState, error) {
			items, err := c.gw.Categories(ctx)
			if err != nil {
				return nil, err
			}
			return func(s CategoriesState) CategoriesState {
				s.Items = items
				return s
			}, nil
		})
}

// RequestDelete запрашивает подтверждение удаления категории id.
func (c *Categories) RequestDelete(id int64) {
	c.update(func(s CategoriesState) CategoriesState {
		s.Delete.TargetID = id
		return s
	})
}

// DismissDelete отменяет удаление без обращения к серверу.
func (c *Categories) DismissDelete() {
	c.update(func(s CategoriesState) CategoriesState {
		s.Delete.TargetID = 0
		return s
	})
}

// ConfirmDelete удаляет выбранную категорию и убирает ее из локального списка.
// Без выбранной категории ничего не делает.
func (c *Categories) ConfirmDelete(ctx context.Context) {
	id := c.State().Delete.TargetID
	if id == 0 {
		return
	}
	c.run(ctx, "categories.delete:"+strconv.FormatInt(id, 10), categoriesDelete,
		func(ctx context.Context) (func(CategoriesState) CategoriesState, error) {
			if err := c.gw.DeleteCategory(ctx, id); err != nil {
				return nil, err
			}
			return func(s CategoriesState) CategoriesState {
				s.ListState = s.Without(func(cat models.Category) bool { return cat.ID == id })
				s.Delete.TargetID = 0
				return s
			}, nil
		})
}

// ClearError очищает ошибку загрузки списка.
func (c *Categories) ClearError() { c.clear(categoriesList) }

// ClearDeleteError очищает ошибку удаления.
func (c *Categories) ClearDeleteError() { c.clear(categoriesDelete) }

// CategoryFormState - форма добавления или редактирования категории.
type CategoryFormState struct {
	ID   int64
	Name string
	Done bool
	viewstate.Status
}

func categoryForm(s *CategoryFormState) *viewstate.Status { return &s.Status }

// CanSubmit сообщает, заполнена ли форма.
func (s CategoryFormState) CanSubmit() bool {
	return s.Name != ""
}

// categoryFormBase содержит общее для добавления и редактирования категории.
type categoryFormBase struct {
	base[CategoryFormState]
	completion
	gw api.CategoriesAPI
}

// SetName меняет введенное имя.
func (c *categoryFormBase) SetName(name string) {
	c.update(func(s CategoryFormState) CategoryFormState {
		s.Name = name
		return s
	})
}

// ResetDone сбрасывает признак завершения после того, как экран его обработал.
func (c *categoryFormBase) ResetDone() {
	c.sig.Drain()
	c.update(func(s CategoryFormState) CategoryFormState {
		s.Done = false
		return s
	})
}

// ClearError очищает ошибку формы.
func (c *categoryFormBase) ClearError() { c.clear(categoryForm) }

func (c *categoryFormBase) markDone(s CategoryFormState) CategoryFormState {
	s.Done = true
	c.sig.Fire()
	return s
}

// CategoryAdd - контроллер формы создания категории.
type CategoryAdd struct {
	categoryFormBase
}

// NewCategoryAdd создает контроллер пустой формы.
func NewCategoryAdd(gw api.CategoriesAPI, opts ...Option) *CategoryAdd {
	return &CategoryAdd{categoryFormBase{
		base: newBase(context.Background(), CategoryFormState{}, "category_add", opts),
		gw:   gw,
	}}
}

// Submit создает категорию. Список не меняется локально: экран перезагружает его сам.
func (c *CategoryAdd) Submit(ctx context.Context) {
	name := c.State().Name
	if err := required(field{"category_name", name}); err != nil {
		c.fail(categoryForm, err)
		return
	}
	c.run(ctx, "category.create", categoryForm,
		func(ctx context.Context) (func(CategoryFormState) CategoryFormState, error) {
			if _, err := c.gw.CreateCategory(ctx, name); err != nil {
				return nil, err
			}
			return c.markDone, nil
		})
}

// CategoryEdit - контроллер формы редактирования категории.
type CategoryEdit struct {
	categoryFormBase
}

// NewCategoryEdit берет id категории из параметров навигации и загружает ее.
// Нечисловой или отсутствующий id превращается в 0, и загрузка завершается ошибкой.
func NewCategoryEdit(ctx context.Context, params Params, gw api.CategoriesAPI, opts ...Option) *CategoryEdit {
	c := &CategoryEdit{categoryFormBase{
		base: newBase(ctx, CategoryFormState{ID: params.ID(ParamCategoryID)}, "category_edit", opts),
		gw:   gw,
	}}
	c.scope.Go(c.Load)
	return c
}

// Load загружает категорию в форму.
func (c *CategoryEdit) Load(ctx context.Context) {
	id := c.State().ID
	c.run(ctx, "category.get", categoryForm,
		func(ctx context.Context) (func(CategoryFormState) CategoryFormState, error) {
			cat, err := c.gw.Category(ctx, id)
			if err != nil {
				return nil, err
			}
			return func(s CategoryFormState) CategoryFormState {
				s.Name = cat.Name
				return s
			}, nil
		})
}

// Submit сохраняет новое имя. При успехе форма показывает отправленное имя,
// при ошибке остается введенное пользователем и Done не выставляется.
func (c *CategoryEdit) Submit(ctx context.Context) {
	st := c.State()
	if err := required(field{"category_name", st.Name}); err != nil {
		c.fail(categoryForm, err)
		return
	}
	id, name := st.ID, st.Name
	c.run(ctx, "category.update", categoryForm,
		func(ctx context.Context) (func(CategoryFormState) CategoryFormState, error) {
			if _, err := c.gw.UpdateCategory(ctx, id, name); err != nil {
				return nil, err
			}
			return func(s CategoryFormState) CategoryFormState {
				s.Name = name
				return c.markDone(s)
			}, nil
		})
}
