package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusball/class-scheduler/internal/domain"
)

func TestGetCatalogsByCreator(t *testing.T) {
	repo := newTestRepository(t)
	suffix := time.Now().UnixNano()

	user := &domain.User{
		Username:     fmt.Sprintf("creator%d", suffix),
		PasswordHash: "x",
		FullName:     "Creator",
		Email:        fmt.Sprintf("creator%d@example.com", suffix),
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, repo.CreateUser(user))
	t.Cleanup(func() { _ = repo.DeleteUser(user.ID) })

	owned := &domain.Catalog{Name: fmt.Sprintf("owned %d", suffix), CreatedBy: user.ID}
	seeded := &domain.Catalog{Name: fmt.Sprintf("seeded %d", suffix)}
	for _, c := range []*domain.Catalog{owned, seeded} {
		require.NoError(t, repo.CreateCatalog(c))
		t.Cleanup(func() { _ = repo.DeleteCatalog(c.ID) })
	}

	mine, err := repo.GetCatalogsByCreator(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, owned.ID, mine[0].ID)
	assert.Equal(t, user.ID, mine[0].CreatedBy)

	got, err := repo.GetCatalogByID(seeded.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CreatedBy)

	// deleting the creator leaves the catalog behind without one
	require.NoError(t, repo.DeleteUser(user.ID))
	got, err = repo.GetCatalogByID(owned.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CreatedBy)
}
