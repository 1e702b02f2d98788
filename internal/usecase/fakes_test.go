package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotel-booking/internal/data/cache"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/queue"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore backs the fake repositories so tests can exercise the lifecycle
// controller, availability calculator and inventory recomputation against a
// consistent in-memory reservation store.
type memStore struct {
	mu           sync.Mutex
	now          time.Time
	rooms        map[uuid.UUID]*entity.RoomType
	reservations map[uuid.UUID]*entity.Reservation
	extras       map[uuid.UUID][]*entity.ReservationExtra

	// afterFind, when set, runs after every reservation read with no store
	// lock held. Tests use it to interleave a competing write between a
	// read and the write that follows it.
	afterFind func()

	// extrasErr, when set, fails every extras batch insert
	extrasErr error
}

func newMemStore(now time.Time) *memStore {
	return &memStore{
		now:          now,
		rooms:        make(map[uuid.UUID]*entity.RoomType),
		reservations: make(map[uuid.UUID]*entity.Reservation),
		extras:       make(map[uuid.UUID][]*entity.ReservationExtra),
	}
}

func (s *memStore) addRoom(room *entity.RoomType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
}

func (s *memStore) reservation(id uuid.UUID) *entity.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res, ok := s.reservations[id]; ok {
		copied := *res
		return &copied
	}
	return nil
}

func (s *memStore) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

func (s *memStore) availableUnits(roomID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID].AvailableUnits
}

// ---- RoomTypeRepository fake ----

type fakeRoomTypeRepo struct{ store *memStore }

func (f *fakeRoomTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if room, ok := f.store.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRoomTypeRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.RoomType, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var rooms []*entity.RoomType
	for _, room := range f.store.rooms {
		copied := *room
		rooms = append(rooms, &copied)
	}
	return rooms, nil
}

func (f *fakeRoomTypeRepo) Count(ctx context.Context) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return int64(len(f.store.rooms)), nil
}

func (f *fakeRoomTypeRepo) RecomputeAvailableUnits(ctx context.Context, id uuid.UUID) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	room, ok := f.store.rooms[id]
	if !ok {
		return 0, fmt.Errorf("room type %s not found", id.String())
	}

	held := 0
	for _, res := range f.store.reservations {
		if res.RoomTypeID == id && res.Status.IsActive() && res.CheckOutDate.After(f.store.now) {
			held += res.Quantity
		}
	}

	available := room.TotalUnits - held
	if available < 0 {
		available = 0
	}
	room.AvailableUnits = available
	return available, nil
}

// ---- ReservationRepository fake ----

type fakeReservationRepo struct{ store *memStore }

func (f *fakeReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	copied := *res
	f.store.reservations[res.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	res := f.store.reservation(id)
	if f.store.afterFind != nil {
		f.store.afterFind()
	}
	return res, nil
}

func (f *fakeReservationRepo) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, res := range f.store.reservations {
		if res.Code == code {
			copied := *res
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range f.store.reservations {
		if res.RoomTypeID == roomTypeID {
			copied := *res
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID) (int64, error) {
	reservations, _ := f.FindByRoomTypeID(ctx, roomTypeID, 0, 0)
	return int64(len(reservations)), nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, res *entity.Reservation) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.reservations[res.ID]; !ok {
		return fmt.Errorf("reservation %s not found", res.ID.String())
	}
	copied := *res
	f.store.reservations[res.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, updatedBy string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	res, ok := f.store.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %s not found", id.String())
	}
	res.Status = status
	res.UpdatedBy = updatedBy
	return nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.reservations[id]; !ok {
		return fmt.Errorf("reservation %s not found", id.String())
	}
	delete(f.store.reservations, id)
	return nil
}

func (f *fakeReservationRepo) SumOverlappingQuantity(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	total := 0
	for _, res := range f.store.reservations {
		if res.RoomTypeID != roomTypeID || !res.Status.IsActive() {
			continue
		}
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if res.Overlaps(checkIn, checkOut) {
			total += res.Quantity
		}
	}
	return total, nil
}

// ---- ReservationExtraRepository fake ----

type fakeExtraRepo struct{ store *memStore }

func (f *fakeExtraRepo) CreateBatch(ctx context.Context, extras []*entity.ReservationExtra) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.extrasErr != nil {
		return f.store.extrasErr
	}
	for _, extra := range extras {
		copied := *extra
		f.store.extras[extra.ReservationID] = append(f.store.extras[extra.ReservationID], &copied)
	}
	return nil
}

func (f *fakeExtraRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationExtra, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.extras[reservationID], nil
}

func (f *fakeExtraRepo) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.extras, reservationID)
	return nil
}

// ---- Publisher fake ----

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
}

func (f *fakePublisher) Publish(ctx context.Context, event queue.ReservationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) eventTypes() []queue.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]queue.EventType, len(f.events))
	for i, e := range f.events {
		types[i] = e.Type
	}
	return types
}

// ---- wiring helpers ----

func testRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		RoomType:         &fakeRoomTypeRepo{store: store},
		Reservation:      &fakeReservationRepo{store: store},
		ReservationExtra: &fakeExtraRepo{store: store},
	}
}

func newTestBookingService(store *memStore, taxRate float64) (*bookingService, *fakePublisher) {
	log := zap.NewNop()
	repo := testRepository(store)
	noopCache := cache.NewAvailabilityCache(nil, 0, log)
	publisher := &fakePublisher{}
	availability := NewAvailabilityService(repo, noopCache, log)

	config := &utils.Config{Booking: utils.BookingConfig{TaxRate: taxRate}}
	svc := NewBookingService(repo, availability, noopCache, publisher, config, log).(*bookingService)
	svc.now = func() time.Time { return store.now }

	return svc, publisher
}

func testRoom(totalUnits int, rate float64) *entity.RoomType {
	return &entity.RoomType{
		Base:           entity.Base{ID: uuid.New()},
		Name:           "Deluxe Double",
		Capacity:       2,
		NightlyRate:    rate,
		TotalUnits:     totalUnits,
		AvailableUnits: totalUnits,
		IsActive:       true,
	}
}
