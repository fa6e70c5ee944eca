package application

import (
	"context"
	"testing"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRoomService(store *memStore) *RoomService {
	return NewRoomService(&memRoomRepo{store: store}, domain.FixedClock{Instant: fixedNow}, zap.NewNop())
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active room", func(t *testing.T) {
		service := newRoomService(newMemStore())

		dto, err := service.CreateRoom(ctx, CreateRoomRequest{
			Number: "101", Type: "deluxe", PricePerNight: 18000, Capacity: 3,
		})
		require.NoError(t, err)
		assert.True(t, dto.IsActive)
		assert.Equal(t, "deluxe", dto.Type)
	})

	t.Run("rejects unknown room type", func(t *testing.T) {
		service := newRoomService(newMemStore())
		_, err := service.CreateRoom(ctx, CreateRoomRequest{
			Number: "101", Type: "penthouse", PricePerNight: 18000,
		})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestFindAvailableRooms(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	roomService := newRoomService(env.store)

	_, err := env.service.CreateBooking(ctx, env.createRequest("2026-03-10", "2026-03-15"))
	require.NoError(t, err)

	t.Run("booked room is hidden for overlapping ranges", func(t *testing.T) {
		rooms, err := roomService.FindAvailableRooms(ctx, "2026-03-12", "2026-03-14", "")
		require.NoError(t, err)
		assert.Empty(t, rooms)
	})

	t.Run("booked room reappears for disjoint ranges", func(t *testing.T) {
		rooms, err := roomService.FindAvailableRooms(ctx, "2026-03-15", "2026-03-20", "")
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, env.room.ID(), rooms[0].ID)
	})

	t.Run("invalid range and type are rejected", func(t *testing.T) {
		_, err := roomService.FindAvailableRooms(ctx, "2026-03-15", "2026-03-10", "")
		assert.True(t, domain.IsValidation(err))

		_, err = roomService.FindAvailableRooms(ctx, "2026-03-15", "2026-03-20", "penthouse")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestDeactivateRoom(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	roomService := newRoomService(env.store)

	dto, err := env.service.CreateBooking(ctx, env.createRequest("2026-03-10", "2026-03-15"))
	require.NoError(t, err)

	require.NoError(t, roomService.DeactivateRoom(ctx, env.room.ID()))

	// Gone from lookups, but the existing booking is untouched.
	_, err = roomService.GetRoom(ctx, env.room.ID())
	assert.True(t, domain.IsNotFound(err))

	got, err := env.service.GetBooking(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)
}
