package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
)

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "a@b.com", "alice_01")

	cat, err := f.catSvc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name:        "Office",
		Description: "Things from work",
		Type:        "work",
		UserID:      owner.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Office", cat.Name)
	assert.Equal(t, "work", cat.Type)
	assert.Equal(t, "#2E86AB", cat.Color)
	assert.Equal(t, owner.ID, cat.UserID)
}

func TestCreateCategory_MissingUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.catSvc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name: "Office", Type: "work", UserID: uuid.New(),
	})
	require.Error(t, err)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindUser, nf.Kind)
	assert.EqualValues(t, 0, f.categories.Count())
}

func TestCreateCategory_DuplicateNameIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")

	_, err := f.catSvc.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Office", Type: "work", UserID: owner.ID,
	})
	require.NoError(t, err)

	_, err = f.catSvc.CreateCategory(ctx, CreateCategoryRequest{
		Name: "OFFICE", Type: "personal", UserID: owner.ID,
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "name", conflict.Field)

	// Another user may reuse the name.
	other := f.createUser(t, "c@d.com", "bob_02")
	_, err = f.catSvc.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Office", Type: "work", UserID: other.ID,
	})
	assert.NoError(t, err)
}

func TestCreateCategory_UnknownType(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "a@b.com", "alice_01")

	_, err := f.catSvc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name: "Office", Type: "misc", UserID: owner.ID,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateCategory_TypeRecolorsAndDescriptionSemantics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	cat, err := f.catSvc.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Office", Description: "Things from work", Type: "work", UserID: owner.ID,
	})
	require.NoError(t, err)

	// A nil description keeps the current one.
	updated, err := f.catSvc.UpdateCategory(ctx, cat.ID, UpdateCategoryRequest{Type: "urgent"})
	require.NoError(t, err)
	assert.Equal(t, "urgent", updated.Type)
	assert.Equal(t, "#FF5722", updated.Color)
	assert.Equal(t, "Things from work", updated.Description)

	// An empty description clears it.
	empty := ""
	updated, err = f.catSvc.UpdateCategory(ctx, cat.ID, UpdateCategoryRequest{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
}

func TestDeleteCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	cat, err := f.catSvc.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Office", Type: "work", UserID: owner.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.catSvc.DeleteCategory(ctx, cat.ID))
	assert.EqualValues(t, 0, f.categories.Count())

	err = f.catSvc.DeleteCategory(ctx, cat.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestGetCategoryByID_MissingPassesSentinel(t *testing.T) {
	f := newFixture(t)

	_, err := f.catSvc.GetCategoryByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListCategoriesByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	other := f.createUser(t, "c@d.com", "bob_02")

	_, err := f.catSvc.CreateCategory(ctx, CreateCategoryRequest{Name: "Office", Type: "work", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.catSvc.CreateCategory(ctx, CreateCategoryRequest{Name: "Gym", Type: "health", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.catSvc.CreateCategory(ctx, CreateCategoryRequest{Name: "Office", Type: "work", UserID: other.ID})
	require.NoError(t, err)

	mine, err := f.catSvc.ListCategoriesByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
