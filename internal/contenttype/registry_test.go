package contenttype_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/model"
	"fieldtrans/internal/repository"
	"fieldtrans/internal/repository/mock"
	"fieldtrans/internal/repository/testutil"
)

func productLoader(products map[int64]*model.Product) contenttype.Loader {
	return func(_ context.Context, id int64) (contenttype.Entity, error) {
		p, ok := products[id]
		if !ok {
			return nil, nil
		}
		return p, nil
	}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	db := testutil.NewTestDB(t)
	reg := contenttype.NewRegistry(repository.NewContentTypeRepository(db))
	ctx := context.Background()

	ct, err := reg.Register(ctx, contenttype.Definition{
		Key:    model.ProductContentType,
		Fields: []string{"name", "description"},
		Load:   productLoader(map[int64]*model.Product{42: {ID: 42, Description: "Wooden"}}),
	})
	require.NoError(t, err)
	require.NotZero(t, ct.ID)

	byKey, ok := reg.ByKey(model.ProductContentType)
	require.True(t, ok)
	require.Equal(t, ct, byKey)

	byID, ok := reg.ByID(ct.ID)
	require.True(t, ok)
	require.Equal(t, ct, byID)

	require.True(t, reg.IsTranslatable(model.ProductContentType, "description"))
	require.False(t, reg.IsTranslatable(model.ProductContentType, "price"))
	require.Equal(t, []string{"name", "description"}, reg.Fields(model.ProductContentType))

	e, err := reg.Load(ctx, ct.ID, 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), e.PK())

	_, err = reg.Load(ctx, ct.ID, 7)
	require.ErrorIs(t, err, contenttype.ErrObjectNotFound)

	_, err = reg.Load(ctx, ct.ID+1, 42)
	require.ErrorIs(t, err, contenttype.ErrMisconfigured)
}

func TestRegistry_RegisterKeepsID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewContentTypeRepository(db)
	ctx := context.Background()
	def := contenttype.Definition{Key: model.ProductContentType, Load: productLoader(nil)}

	first, err := contenttype.NewRegistry(repo).Register(ctx, def)
	require.NoError(t, err)
	second, err := contenttype.NewRegistry(repo).Register(ctx, def)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestRegistry_ContentTypeOf(t *testing.T) {
	db := testutil.NewTestDB(t)
	reg := contenttype.NewRegistry(repository.NewContentTypeRepository(db))
	ctx := context.Background()

	ct, err := reg.Register(ctx, contenttype.Definition{Key: model.ProductContentType, Load: productLoader(nil)})
	require.NoError(t, err)

	got, err := reg.ContentTypeOf(&model.Product{ID: 42})
	require.NoError(t, err)
	require.Equal(t, ct.ID, got.ID)

	_, err = reg.ContentTypeOf(nil)
	require.ErrorIs(t, err, contenttype.ErrMisconfigured)

	_, err = reg.ContentTypeOf(&model.Product{})
	require.ErrorIs(t, err, contenttype.ErrMisconfigured)

	empty := contenttype.NewRegistry(repository.NewContentTypeRepository(db))
	_, err = empty.ContentTypeOf(&model.Product{ID: 42})
	require.ErrorIs(t, err, contenttype.ErrMisconfigured)
}

func TestRegistry_RegisterValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockContentTypeRepository(ctrl)
	reg := contenttype.NewRegistry(repo)
	ctx := context.Background()

	_, err := reg.Register(ctx, contenttype.Definition{Key: model.ContentTypeKey{AppLabel: "catalog"}, Load: productLoader(nil)})
	require.ErrorIs(t, err, contenttype.ErrMisconfigured)

	_, err = reg.Register(ctx, contenttype.Definition{Key: model.ProductContentType})
	require.ErrorIs(t, err, contenttype.ErrMisconfigured)

	repo.EXPECT().GetOrCreate(gomock.Any(), "catalog", "product").Return(model.ContentType{}, errors.New("db down"))
	_, err = reg.Register(ctx, contenttype.Definition{Key: model.ProductContentType, Load: productLoader(nil)})
	require.Error(t, err)
	_, ok := reg.ByKey(model.ProductContentType)
	require.False(t, ok)
}
