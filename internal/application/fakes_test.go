package application

import (
	"context"
	"sync"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	bookingDomain "github.com/mosikk/nosql-airbnb/internal/domain/booking"
	clientDomain "github.com/mosikk/nosql-airbnb/internal/domain/client"
	roomDomain "github.com/mosikk/nosql-airbnb/internal/domain/room"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- record store fakes ---

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[primitive.ObjectID]*clientDomain.Client
	finds   int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[primitive.ObjectID]*clientDomain.Client{}}
}

func (r *fakeClientRepo) Insert(_ context.Context, c *clientDomain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID()] = c
	return nil
}

func (r *fakeClientRepo) FindByID(_ context.Context, id primitive.ObjectID) (*clientDomain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.NewNotFoundError("client", id.Hex())
	}
	return c, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[primitive.ObjectID]*roomDomain.Room
	finds int
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[primitive.ObjectID]*roomDomain.Room{}}
}

func (r *fakeRoomRepo) Insert(_ context.Context, rm *roomDomain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID()] = rm
	return nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id primitive.ObjectID) (*roomDomain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	rm, ok := r.rooms[id]
	if !ok {
		return nil, domain.NewNotFoundError("room", id.Hex())
	}
	return rm, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*bookingDomain.Booking
	finds    int
	inserts  int
	replaces int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]*bookingDomain.Booking{}}
}

func (r *fakeBookingRepo) Insert(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	r.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id primitive.ObjectID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.Hex())
	}
	// Hand out a copy so callers mutating the aggregate behave like a real
	// store round trip.
	return bookingDomain.Reconstruct(b.ID(), b.ClientID(), b.RoomID(), b.IsPaid(), b.StartDt(), b.EndDt()), nil
}

func (r *fakeBookingRepo) Replace(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	if _, ok := r.bookings[b.ID()]; !ok {
		return domain.NewNotFoundError("booking", b.ID().Hex())
	}
	r.bookings[b.ID()] = b
	return nil
}

// --- availability index fake ---

// fakeIndex keeps indexed bookings in memory and answers overlap queries
// with the full interval test. bootstrapped=false simulates an index that
// has never been created.
type fakeIndex struct {
	mu           sync.Mutex
	bookings     map[primitive.ObjectID]*bookingDomain.Booking
	bootstrapped bool
	indexErr     error
	queryErr     error
	indexCalls   int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{bookings: map[primitive.ObjectID]*bookingDomain.Booking{}, bootstrapped: true}
}

func (i *fakeIndex) Index(_ context.Context, b *bookingDomain.Booking) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.indexCalls++
	if i.indexErr != nil {
		return i.indexErr
	}
	i.bookings[b.ID()] = b
	i.bootstrapped = true
	return nil
}

func (i *fakeIndex) FindOverlapping(_ context.Context, roomID primitive.ObjectID, start, end time.Time) ([]*bookingDomain.Booking, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.queryErr != nil {
		return nil, i.queryErr
	}
	if !i.bootstrapped {
		return nil, nil
	}
	var out []*bookingDomain.Booking
	for _, b := range i.bookings {
		if b.RoomID() == roomID && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeRoomIndex keeps indexed rooms in memory and matches terms by exact
// field equality, which is all the unit tests need.
type fakeRoomIndex struct {
	mu       sync.Mutex
	rooms    []*roomDomain.Room
	indexErr error
	queryErr error
}

func (i *fakeRoomIndex) Index(_ context.Context, r *roomDomain.Room) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.indexErr != nil {
		return i.indexErr
	}
	i.rooms = append(i.rooms, r)
	return nil
}

func (i *fakeRoomIndex) FindBy(_ context.Context, field roomDomain.SearchField, term string) ([]*roomDomain.Room, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.queryErr != nil {
		return nil, i.queryErr
	}
	var out []*roomDomain.Room
	for _, r := range i.rooms {
		var value string
		switch field {
		case roomDomain.FieldName:
			value = r.Name()
		case roomDomain.FieldCountry:
			value = r.Country()
		case roomDomain.FieldCity:
			value = r.City()
		case roomDomain.FieldAddress:
			value = r.Address()
		}
		if value == term {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- room lock fake ---

type fakeLocker struct {
	mu       sync.Mutex
	busy     bool
	acquires int
	releases int
}

func (l *fakeLocker) Acquire(_ context.Context, roomID primitive.ObjectID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return domain.NewUnavailableError(roomID.Hex())
	}
	l.busy = true
	l.acquires++
	return nil
}

func (l *fakeLocker) Release(_ context.Context, _ primitive.ObjectID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = false
	l.releases++
	return nil
}

// --- cache fake ---

// fakeCache records operation order so tests can assert the delete-then-set
// invalidation discipline.
type fakeCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	ops      []string
	disabled bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, kind, id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return nil, false
	}
	v, ok := c.entries[kind+":"+id]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, kind, id string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, "set "+kind+":"+id)
	if c.disabled {
		return
	}
	c.entries[kind+":"+id] = value
}

func (c *fakeCache) Delete(_ context.Context, kind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, "delete "+kind+":"+id)
	delete(c.entries, kind+":"+id)
}

// --- event publisher fake ---

type publishedEvent struct {
	eventType string
	key       string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, eventType, key string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, key: key})
}
