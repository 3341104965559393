package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

func TestCreateOwner(t *testing.T) {
	gdb := dbtest.Open(t)
	f := dbtest.Seed(t, gdb)
	repo := NewUserGormRepository(gdb)
	ctx := context.Background()

	u := &models.User{Username: "socio", Name: "Socio", PasswordHash: "x", Role: models.RoleOwnerVIP}
	require.NoError(t, repo.CreateOwner(ctx, f.Shop.ID, u))
	require.NotNil(t, u.ShopID)
	assert.Equal(t, f.Shop.ID, *u.ShopID)

	dup := &models.User{Username: "owner", Name: "Dup", PasswordHash: "x", Role: models.RoleOwner}
	assert.ErrorIs(t, repo.CreateOwner(ctx, f.Shop.ID, dup), ErrUsernameTaken)

	lost := &models.User{Username: "perdido", Name: "P", PasswordHash: "x", Role: models.RoleOwner}
	assert.ErrorIs(t, repo.CreateOwner(ctx, f.Shop.ID+9, lost), ErrShopNotFound)

	client := &models.User{Username: "nope", Name: "N", PasswordHash: "x", Role: models.RoleClient}
	assert.ErrorIs(t, repo.CreateOwner(ctx, f.Shop.ID, client), ErrInvalidRole)
}

func TestListOwnersAndSetOwnerRole(t *testing.T) {
	gdb := dbtest.Open(t)
	f := dbtest.Seed(t, gdb)
	repo := NewUserGormRepository(gdb)
	ctx := context.Background()

	dbtest.NewUser(t, gdb, "alfa", models.RoleOwner, &f.Shop.ID)

	owners, err := repo.ListOwners(ctx, models.RoleOwner)
	require.NoError(t, err)
	require.Len(t, owners, 2)
	assert.Equal(t, "alfa", owners[0].Username)
	assert.Equal(t, "owner", owners[1].Username)

	vip, err := repo.ListOwners(ctx, models.RoleOwnerVIP)
	require.NoError(t, err)
	assert.Empty(t, vip)

	u, err := repo.SetOwnerRole(ctx, "owner", models.RoleOwnerVIP)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwnerVIP, u.Role)

	vip, err = repo.ListOwners(ctx, models.RoleOwnerVIP)
	require.NoError(t, err)
	require.Len(t, vip, 1)
	assert.Equal(t, f.Owner.ID, vip[0].ID)

	_, err = repo.SetOwnerRole(ctx, "client", models.RoleOwnerVIP)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = repo.SetOwnerRole(ctx, "nadie", models.RoleOwner)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.SetOwnerRole(ctx, "owner", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = repo.ListOwners(ctx, models.RoleBarber)
	assert.ErrorIs(t, err, ErrInvalidRole)
}
