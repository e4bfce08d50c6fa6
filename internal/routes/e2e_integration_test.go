package routes_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"asset-tracker/internal/apiclient"
	"asset-tracker/internal/cache"
	"asset-tracker/internal/controller"
	"asset-tracker/internal/database/dbtest"
	"asset-tracker/internal/inventory"
	"asset-tracker/internal/models"
	"asset-tracker/internal/queue"
	"asset-tracker/internal/routes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) *apiclient.Client {
	t.Helper()
	db := dbtest.Setup(t)
	h := controller.NewHandler(db, cache.NewLists(nil, 0), queue.NewPublisher(nil))
	srv := httptest.NewServer(routes.Handler(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL, srv.Client())
}

func TestCategoryCascadeEndToEnd(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t)

	cat, err := api.CreateCategory(ctx, "Laptops", nil)
	require.NoError(t, err)
	other, err := api.CreateCategory(ctx, "Desks", nil)
	require.NoError(t, err)

	qty := 1
	created, err := api.CreateAsset(ctx, &models.Asset{
		AssetName: "MBP", AssetCode: "A1", CategoryID: &cat.ID, Status: models.StatusInUse, Quantity: &qty,
	})
	require.NoError(t, err)
	_, err = api.CreateAsset(ctx, &models.Asset{AssetName: "Desk", AssetCode: "D1", CategoryID: &other.ID})
	require.NoError(t, err)

	assets, err := api.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	byCode := map[string]models.Asset{}
	for _, a := range assets {
		byCode[a.AssetCode] = a
	}
	require.NotNil(t, byCode["A1"].Category)
	assert.Equal(t, "Laptops", *byCode["A1"].Category)

	require.NoError(t, api.DeleteCategory(ctx, cat.ID))

	got, err := api.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)

	assets, err = api.ListAssets(ctx)
	require.NoError(t, err)
	for _, a := range assets {
		if a.AssetCode == "D1" {
			require.NotNil(t, a.Category, "other categories are unaffected")
			assert.Equal(t, "Desks", *a.Category)
		}
	}
}

func TestSessionAgainstServer(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t)
	s := inventory.NewSession(api)
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.AddCategory(ctx, "Laptops", nil))
	assert.ErrorIs(t, s.AddCategory(ctx, "laptops", nil), inventory.ErrDuplicateCategory)
	cat := s.Store.Snapshot().Categories[0]

	s.OpenAdd()
	require.NoError(t, s.AddAsset(ctx, &models.Asset{AssetCode: "A1", AssetName: "MBP", CategoryID: &cat.ID}))
	s.SelectCategory("Laptops")
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, 1, s.Dashboard().InStorage, "status defaults to In Storage")

	s.RequestCategoryDelete(cat.ID)
	require.NoError(t, s.ConfirmCategoryDelete(ctx))
	assets := s.Store.Snapshot().Assets
	require.Len(t, assets, 1)
	assert.Nil(t, assets[0].Category)

	s.RequestAssetDelete(assets[0].ID)
	require.NoError(t, s.ConfirmAssetDelete(ctx))
	assert.Empty(t, s.Store.Snapshot().Assets)

	err := api.DeleteAsset(ctx, assets[0].ID)
	assert.True(t, apiclient.IsNotFound(err))
}

func TestTodoNoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t)

	todo, err := api.CreateTodo(ctx, "renew licence")
	require.NoError(t, err)

	note := "x"
	_, err = api.UpdateTodo(ctx, todo.ID, true, &note)
	require.NoError(t, err)
	todos, err := api.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Done)
	require.NotNil(t, todos[0].Note)
	assert.Equal(t, "x", *todos[0].Note)

	blank := "  "
	_, err = api.UpdateTodo(ctx, todo.ID, true, &blank)
	require.NoError(t, err)
	todos, err = api.ListTodos(ctx)
	require.NoError(t, err)
	assert.Nil(t, todos[0].Note)
}
