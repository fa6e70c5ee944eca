package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	bookingDomain "github.com/aurelia-hotels/service-reservation/internal/domain/booking"
	clientDomain "github.com/aurelia-hotels/service-reservation/internal/domain/client"
	roomDomain "github.com/aurelia-hotels/service-reservation/internal/domain/room"
	"github.com/aurelia-hotels/service-reservation/internal/kafka"
	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the database. A single mutex guards
// the maps; per-room mutexes reproduce the row-lock serialization the real
// transaction manager gets from FOR UPDATE.
type memStore struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*bookingDomain.Booking
	rooms     map[uuid.UUID]*roomDomain.Room
	clients   map[uuid.UUID]*clientDomain.Client
	roomLocks map[uuid.UUID]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		bookings:  make(map[uuid.UUID]*bookingDomain.Booking),
		rooms:     make(map[uuid.UUID]*roomDomain.Room),
		clients:   make(map[uuid.UUID]*clientDomain.Client),
		roomLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *memStore) roomLock(roomID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	return lock
}

// memTxManager runs the transaction function against the shared store,
// releasing any room locks taken inside the transaction when it returns.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) InTx(ctx context.Context, fn func(ctx context.Context, uow bookingDomain.UnitOfWork) error) error {
	uow := &memUnitOfWork{store: m.store}
	defer uow.releaseLocks()
	return fn(ctx, uow)
}

type memUnitOfWork struct {
	store *memStore
	held  []*sync.Mutex
}

func (u *memUnitOfWork) Bookings() bookingDomain.BookingRepository { return &memBookingRepo{u.store} }
func (u *memUnitOfWork) Rooms() roomDomain.Repository              { return &memRoomRepo{u.store} }
func (u *memUnitOfWork) Clients() clientDomain.Repository          { return &memClientRepo{u.store} }

func (u *memUnitOfWork) LockRoom(_ context.Context, roomID uuid.UUID) error {
	u.store.mu.Lock()
	_, exists := u.store.rooms[roomID]
	u.store.mu.Unlock()
	if !exists {
		return domain.NewNotFoundError("Room", roomID.String())
	}

	lock := u.store.roomLock(roomID)
	lock.Lock()
	u.held = append(u.held, lock)
	return nil
}

func (u *memUnitOfWork) releaseLocks() {
	for _, lock := range u.held {
		lock.Unlock()
	}
	u.held = nil
}

// --- booking repository ---

type memBookingRepo struct {
	store *memStore
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	bk, ok := r.store.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *memBookingRepo) FindByRoomID(_ context.Context, roomID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.store.bookings {
		if bk.RoomID() == roomID {
			result = append(result, bk)
		}
	}
	return result, nil
}

func (r *memBookingRepo) FindByClientID(_ context.Context, clientID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.store.bookings {
		if bk.ClientID() == clientID {
			result = append(result, bk)
		}
	}
	return result, nil
}

func (r *memBookingRepo) FindConflict(
	_ context.Context,
	roomID uuid.UUID,
	stay bookingDomain.DateRange,
	excludeID *uuid.UUID,
) (*bookingDomain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, bk := range r.store.bookings {
		if bk.RoomID() != roomID || bk.Status() != bookingDomain.StatusActive {
			continue
		}
		if excludeID != nil && bk.ID() == *excludeID {
			continue
		}
		if bk.Stay().Overlaps(stay) {
			return bk, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) FindDueForCompletion(_ context.Context, date time.Time) ([]*bookingDomain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.store.bookings {
		if bk.Status() == bookingDomain.StatusActive && !bk.Stay().CheckOut().After(date) {
			result = append(result, bk)
		}
	}
	return result, nil
}

func (r *memBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*bookingDomain.Booking, 0, len(r.store.bookings))
	for _, bk := range r.store.bookings {
		all = append(all, bk)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().After(all[j].CreatedAt()) })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.store.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *memBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings[bk.ID()] = bk
	return nil
}

func (r *memBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[bk.ID()]; !ok {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	r.store.bookings[bk.ID()] = bk
	return nil
}

func (r *memBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[id]; !ok {
		return domain.NewNotFoundError("Booking", id.String())
	}
	delete(r.store.bookings, id)
	return nil
}

// --- room repository ---

type memRoomRepo struct {
	store *memStore
}

func (r *memRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rm, ok := r.store.rooms[id]
	if !ok || !rm.IsActive() {
		return nil, domain.NewNotFoundError("Room", id.String())
	}
	return rm, nil
}

func (r *memRoomRepo) FindAll(_ context.Context) ([]*roomDomain.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*roomDomain.Room
	for _, rm := range r.store.rooms {
		if rm.IsActive() {
			result = append(result, rm)
		}
	}
	return result, nil
}

func (r *memRoomRepo) FindAvailable(
	ctx context.Context,
	checkIn, checkOut time.Time,
	roomType *roomDomain.RoomType,
) ([]*roomDomain.Room, error) {
	stay, err := bookingDomain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*roomDomain.Room
	for _, rm := range r.store.rooms {
		if !rm.IsActive() {
			continue
		}
		if roomType != nil && rm.Type() != *roomType {
			continue
		}
		booked := false
		for _, bk := range r.store.bookings {
			if bk.RoomID() == rm.ID() && bk.Status() == bookingDomain.StatusActive && bk.Stay().Overlaps(stay) {
				booked = true
				break
			}
		}
		if !booked {
			result = append(result, rm)
		}
	}
	return result, nil
}

func (r *memRoomRepo) Save(_ context.Context, rm *roomDomain.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.rooms[rm.ID()] = rm
	return nil
}

func (r *memRoomRepo) Update(_ context.Context, rm *roomDomain.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.rooms[rm.ID()]; !ok {
		return domain.NewNotFoundError("Room", rm.ID().String())
	}
	r.store.rooms[rm.ID()] = rm
	return nil
}

// --- client repository ---

type memClientRepo struct {
	store *memStore
}

func (r *memClientRepo) FindByID(_ context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.clients[id]
	if !ok {
		return nil, domain.NewNotFoundError("Client", id.String())
	}
	return c, nil
}

func (r *memClientRepo) FindByEmail(_ context.Context, email string) (*clientDomain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.clients {
		if c.Email() == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) FindAll(_ context.Context) ([]*clientDomain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*clientDomain.Client
	for _, c := range r.store.clients {
		result = append(result, c)
	}
	return result, nil
}

func (r *memClientRepo) Save(_ context.Context, c *clientDomain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.clients[c.ID()] = c
	return nil
}

func (r *memClientRepo) Update(_ context.Context, c *clientDomain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.clients[c.ID()]; !ok {
		return domain.NewNotFoundError("Client", c.ID().String())
	}
	r.store.clients[c.ID()] = c
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.clients[id]; !ok {
		return domain.NewNotFoundError("Client", id.String())
	}
	delete(r.store.clients, id)
	return nil
}

// --- event publisher ---

type memPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *memPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *memPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// --- classifier ---

type staticClassifier struct {
	status clientDomain.VIPStatus
}

func (c staticClassifier) Classify(_ context.Context, _ string) clientDomain.VIPStatus {
	return c.status
}
