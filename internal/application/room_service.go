package application

import (
	"context"
	"encoding/json"

	roomDomain "github.com/mosikk/nosql-airbnb/internal/domain/room"
	"go.uber.org/zap"
)

// CreateRoomRequest holds the data needed to list a room.
type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// RoomService handles room listing, cached reads and attribute search.
type RoomService struct {
	rooms  roomDomain.Repository
	index  roomDomain.SearchIndex
	cache  EntityCache
	logger *zap.Logger
}

// NewRoomService creates a RoomService.
func NewRoomService(rooms roomDomain.Repository, index roomDomain.SearchIndex, cache EntityCache, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, index: index, cache: cache, logger: logger}
}

// CreateRoom lists a new room and propagates it into the search index so the
// discovery endpoints can find it. Index failure is logged, not rolled back,
// same policy as booking propagation.
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (string, error) {
	r, err := roomDomain.NewRoom(req.Name, req.Country, req.City, req.Address, req.Description)
	if err != nil {
		return "", err
	}
	if err := s.rooms.Insert(ctx, r); err != nil {
		return "", err
	}

	if err := s.index.Index(ctx, r); err != nil {
		s.logger.Error("room committed but index propagation failed",
			zap.String("room_id", r.ID().Hex()),
			zap.Error(err),
		)
	}
	return r.ID().Hex(), nil
}

// GetRoom retrieves a room, read-through.
func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*RoomDTO, error) {
	id, err := parseID(roomID)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.cache.Get(ctx, kindRoom, id.Hex()); ok {
		var dto RoomDTO
		if err := json.Unmarshal(raw, &dto); err == nil {
			return &dto, nil
		}
	}

	r, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toRoomDTO(r)
	if payload, err := json.Marshal(dto); err == nil {
		s.cache.Set(ctx, kindRoom, dto.ID, payload)
	}
	return &dto, nil
}

// SearchRooms returns rooms matching term on the given field via the search
// index. Index failures bubble up; the handler reports them as not found.
func (s *RoomService) SearchRooms(ctx context.Context, field roomDomain.SearchField, term string) ([]RoomDTO, error) {
	rooms, err := s.index.FindBy(ctx, field, term)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = toRoomDTO(r)
	}
	return dtos, nil
}

func toRoomDTO(r *roomDomain.Room) RoomDTO {
	return RoomDTO{
		ID:          r.ID().Hex(),
		Name:        r.Name(),
		Country:     r.Country(),
		City:        r.City(),
		Address:     r.Address(),
		Description: r.Description(),
	}
}
