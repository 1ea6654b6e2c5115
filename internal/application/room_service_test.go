package application

import (
	"context"
	"testing"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	"github.com/mosikk/nosql-airbnb/internal/domain/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loftRequest() CreateRoomRequest {
	return CreateRoomRequest{
		Name:        "Loft",
		Country:     "FR",
		City:        "Paris",
		Address:     "Rue A",
		Description: "small loft near the river",
	}
}

func TestRoomService_CreateIndexesRoom(t *testing.T) {
	repo := newFakeRoomRepo()
	index := &fakeRoomIndex{}
	svc := NewRoomService(repo, index, newFakeCache(), zap.NewNop())
	ctx := context.Background()

	id, err := svc.CreateRoom(ctx, loftRequest())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	found, err := svc.SearchRooms(ctx, room.FieldCity, "Paris")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)
	assert.Equal(t, "Loft", found[0].Name)
}

func TestRoomService_CreateSurvivesIndexFailure(t *testing.T) {
	repo := newFakeRoomRepo()
	index := &fakeRoomIndex{indexErr: domain.NewIndexError("index rooms", assert.AnError)}
	svc := NewRoomService(repo, index, newFakeCache(), zap.NewNop())
	ctx := context.Background()

	id, err := svc.CreateRoom(ctx, loftRequest())
	require.NoError(t, err, "index propagation failure is logged, not surfaced")

	got, err := svc.GetRoom(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Name)
}

func TestRoomService_GetReadThrough(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo, &fakeRoomIndex{}, newFakeCache(), zap.NewNop())
	ctx := context.Background()

	id, err := svc.CreateRoom(ctx, loftRequest())
	require.NoError(t, err)

	_, err = svc.GetRoom(ctx, id)
	require.NoError(t, err)
	storeHits := repo.finds

	_, err = svc.GetRoom(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, storeHits, repo.finds)
}

func TestRoomService_SearchIndexFailure(t *testing.T) {
	index := &fakeRoomIndex{queryErr: domain.NewIndexError("search rooms", assert.AnError)}
	svc := NewRoomService(newFakeRoomRepo(), index, newFakeCache(), zap.NewNop())

	_, err := svc.SearchRooms(context.Background(), room.FieldCountry, "FR")
	assert.Error(t, err)
}

func TestRoomService_GetErrors(t *testing.T) {
	svc := NewRoomService(newFakeRoomRepo(), &fakeRoomIndex{}, newFakeCache(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.GetRoom(ctx, "not-hex")
	assert.Equal(t, domain.CodeInvalidID, domain.CodeOf(err))

	_, err = svc.GetRoom(ctx, "65f000000000000000000000")
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}
