package controller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/inventory/client/internal/controller"
	"github.com/maynagashev/inventory/models"
)

func TestRentalItems_FetchAndSelect(t *testing.T) {
	gw := new(mockAPI)
	items := []models.RentalItem{
		{ID: 10, Name: "Drill", CategoryID: 3},
		{ID: 11, Name: "Saw", CategoryID: 3},
	}
	gw.On("RentalItems", mock.Anything, int64(3)).Return(items, nil).Once()

	c := controller.NewRentalItems(context.Background(), controller.Params{"categoryId": "3"}, gw)
	defer c.Close()
	c.Wait()

	st := c.State()
	assert.Equal(t, int64(3), st.CategoryID)
	assert.Equal(t, items, st.Items)
	assert.False(t, st.Loading)

	c.Select(11)
	assert.Equal(t, controller.RentalItemSelection{CategoryID: 3, RentalItemID: 11}, c.State().Selected)
	gw.AssertExpectations(t)
}

func TestRentalItems_Delete(t *testing.T) {
	gw := new(mockAPI)
	gw.On("RentalItems", mock.Anything, int64(3)).
		Return([]models.RentalItem{{ID: 10, Name: "Drill"}, {ID: 11, Name: "Saw"}}, nil).Once()
	gw.On("DeleteRentalItem", mock.Anything, int64(10)).Return(nil).Once()

	c := controller.NewRentalItems(context.Background(), controller.Params{"categoryId": "3"}, gw)
	defer c.Close()
	c.Wait()

	c.Select(10)
	c.RequestDelete(10)
	c.ConfirmDelete(context.Background())

	st := c.State()
	assert.Equal(t, []models.RentalItem{{ID: 11, Name: "Saw"}}, st.Items)
	assert.Equal(t, int64(0), st.Delete.TargetID)
	assert.Equal(t, controller.RentalItemSelection{}, st.Selected, "Удаленный предмет больше не выбран")
	gw.AssertExpectations(t)
}

func TestRentalItems_FetchErrorWithoutCategory(t *testing.T) {
	gw := new(mockAPI)
	gw.On("RentalItems", mock.Anything, int64(0)).Return(nil, errServer).Once()

	c := controller.NewRentalItems(context.Background(), nil, gw)
	defer c.Close()
	c.Wait()

	assert.Equal(t, errServer.Error(), c.State().Error)
	assert.False(t, c.State().Loading)
}

func TestRentalItemAdd(t *testing.T) {
	t.Run("Передает_категорию_и_автора", func(t *testing.T) {
		gw := new(mockAPI)
		gw.On("CreateRentalItem", mock.Anything, int64(3), "Drill", int64(42)).
			Return(models.RentalItem{ID: 1, Name: "Drill"}, nil).Once()

		c := controller.NewRentalItemAdd(controller.Params{"categoryId": "3"}, gw, 42)
		defer c.Close()

		c.SetName("Drill")
		c.Submit(context.Background())

		assert.True(t, c.State().Done)
		assert.Empty(t, c.State().Error)
		gw.AssertExpectations(t)
	})

	t.Run("Пустое_имя", func(t *testing.T) {
		gw := new(mockAPI)
		c := controller.NewRentalItemAdd(controller.Params{"categoryId": "3"}, gw, 1)
		defer c.Close()

		c.Submit(context.Background())

		assert.NotEmpty(t, c.State().Error)
		gw.AssertNotCalled(t, "CreateRentalItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRentalItemEdit(t *testing.T) {
	params := controller.Params{"categoryId": "3", "rentalItemId": "10"}

	t.Run("Загрузка_и_сохранение", func(t *testing.T) {
		gw := new(mockAPI)
		gw.On("RentalItem", mock.Anything, int64(10)).Return(models.RentalItem{ID: 10, Name: "Drill"}, nil).Once()
		gw.On("UpdateRentalItem", mock.Anything, int64(10), "Hammer drill").
			Return(models.RentalItem{ID: 10, Name: "Hammer drill"}, nil).Once()

		c := controller.NewRentalItemEdit(context.Background(), params, gw)
		defer c.Close()
		c.Wait()

		st := c.State()
		assert.Equal(t, "Drill", st.Name)
		assert.Equal(t, int64(3), st.CategoryID)

		c.SetName("Hammer drill")
		c.Submit(context.Background())

		assert.True(t, c.State().Done)
		assert.Equal(t, "Hammer drill", c.State().Name)
		<-c.Completed()

		c.ResetDone()
		assert.False(t, c.State().Done)
		gw.AssertExpectations(t)
	})

	t.Run("Ошибка_сохранения", func(t *testing.T) {
		gw := new(mockAPI)
		gw.On("RentalItem", mock.Anything, int64(10)).Return(models.RentalItem{ID: 10, Name: "Drill"}, nil).Once()
		gw.On("UpdateRentalItem", mock.Anything, int64(10), "Typed").
			Return(models.RentalItem{}, errServer).Once()

		c := controller.NewRentalItemEdit(context.Background(), params, gw)
		defer c.Close()
		c.Wait()

		c.SetName("Typed")
		c.Submit(context.Background())

		st := c.State()
		assert.Equal(t, "Typed", st.Name)
		assert.False(t, st.Done)
		assert.Equal(t, errServer.Error(), st.Error)

		c.ClearError()
		assert.Empty(t, c.State().Error)
	})
}
