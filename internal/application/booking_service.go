package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	bookingDomain "github.com/mosikk/nosql-airbnb/internal/domain/booking"
	clientDomain "github.com/mosikk/nosql-airbnb/internal/domain/client"
	roomDomain "github.com/mosikk/nosql-airbnb/internal/domain/room"
	"github.com/mosikk/nosql-airbnb/internal/events"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to admit a new booking. Dates
// accept "2006-01-02" or RFC 3339.
type CreateBookingRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	RoomID   string `json:"room_id" binding:"required"`
	IsPaid   bool   `json:"is_paid"`
	StartDt  string `json:"start_dt" binding:"required"`
	EndDt    string `json:"end_dt" binding:"required"`
}

// BookingDTO is the response representation of a booking. It doubles as the
// cache value format.
type BookingDTO struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	RoomID   string    `json:"room_id"`
	IsPaid   bool      `json:"is_paid"`
	StartDt  time.Time `json:"start_dt"`
	EndDt    time.Time `json:"end_dt"`
}

// BookingService orchestrates booking admission: it is the only component
// holding invariants across the record store and the availability index.
type BookingService struct {
	bookings  bookingDomain.Repository
	clients   clientDomain.Repository
	rooms     roomDomain.Repository
	index     bookingDomain.AvailabilityIndex
	locker    bookingDomain.RoomLocker
	cache     EntityCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	clients clientDomain.Repository,
	rooms roomDomain.Repository,
	index bookingDomain.AvailabilityIndex,
	locker bookingDomain.RoomLocker,
	cache EntityCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		clients:   clients,
		rooms:     rooms,
		index:     index,
		locker:    locker,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking admits a new booking for a room. The per-room advisory lock
// is held from the availability check through both writes, closing the
// check-then-act window between concurrent admissions.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error) {
	clientID, err := parseID(req.ClientID)
	if err != nil {
		return "", err
	}
	roomID, err := parseID(req.RoomID)
	if err != nil {
		return "", err
	}
	startDt, err := parseDate("start_dt", req.StartDt)
	if err != nil {
		return "", err
	}
	endDt, err := parseDate("end_dt", req.EndDt)
	if err != nil {
		return "", err
	}

	// Referential integrity is checked here, not enforced by the store.
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return "", err
	}
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return "", err
	}

	if err := s.locker.Acquire(ctx, roomID); err != nil {
		return "", err
	}
	defer func() {
		// Release even when the request context is already gone; the TTL
		// index is only the crash backstop.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.locker.Release(releaseCtx, roomID); err != nil {
			s.logger.Warn("failed to release room lock",
				zap.String("room_id", roomID.Hex()),
				zap.Error(err),
			)
		}
	}()

	overlapping, err := s.index.FindOverlapping(ctx, roomID, startDt, endDt)
	if err != nil {
		return "", err
	}
	if len(overlapping) > 0 {
		return "", domain.NewUnavailableError(roomID.Hex())
	}

	b, err := bookingDomain.NewBooking(clientID, roomID, req.IsPaid, startDt, endDt)
	if err != nil {
		return "", err
	}

	if err := s.bookings.Insert(ctx, b); err != nil {
		return "", err
	}

	// Index propagation happens after the store commit and is not rolled
	// back: until it succeeds the booking cannot block future overlaps, a
	// documented inconsistency rather than a failure of this request.
	if err := s.index.Index(ctx, b); err != nil {
		s.logger.Error("booking committed but index propagation failed",
			zap.String("booking_id", b.ID().Hex()),
			zap.String("room_id", roomID.Hex()),
			zap.Error(err),
		)
	}

	s.publisher.Publish(ctx, events.BookingCreated, b.ID().Hex(), toBookingDTO(b))

	return b.ID().Hex(), nil
}

// PayBooking flips a booking's paid flag. The cache entry is deleted before
// being repopulated so a racing read can never resurrect the unpaid value.
func (s *BookingService) PayBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	id, err := parseID(bookingID)
	if err != nil {
		return nil, err
	}

	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Pay(); err != nil {
		return nil, err
	}
	if err := s.bookings.Replace(ctx, b); err != nil {
		return nil, err
	}

	dto := toBookingDTO(b)
	s.cache.Delete(ctx, kindBooking, dto.ID)
	if payload, err := json.Marshal(dto); err == nil {
		s.cache.Set(ctx, kindBooking, dto.ID, payload)
	}

	// Keep the indexed copy in step with the store; stale is_paid does not
	// affect availability answers, so failure is only logged.
	if err := s.index.Index(ctx, b); err != nil {
		s.logger.Error("paid booking committed but index refresh failed",
			zap.String("booking_id", dto.ID),
			zap.Error(err),
		)
	}

	s.publisher.Publish(ctx, events.BookingPaid, dto.ID, dto)

	return &dto, nil
}

// GetBooking retrieves a booking, read-through: cache probe first, record
// store on miss, repopulate with TTL.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	id, err := parseID(bookingID)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.cache.Get(ctx, kindBooking, id.Hex()); ok {
		var dto BookingDTO
		if err := json.Unmarshal(raw, &dto); err == nil {
			return &dto, nil
		}
		// Unreadable entry: fall through to the store and overwrite it.
	}

	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toBookingDTO(b)
	if payload, err := json.Marshal(dto); err == nil {
		s.cache.Set(ctx, kindBooking, dto.ID, payload)
	}
	return &dto, nil
}

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:       b.ID().Hex(),
		ClientID: b.ClientID().Hex(),
		RoomID:   b.RoomID().Hex(),
		IsPaid:   b.IsPaid(),
		StartDt:  b.StartDt(),
		EndDt:    b.EndDt(),
	}
}
