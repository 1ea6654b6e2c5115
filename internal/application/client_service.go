package application

import (
	"context"
	"encoding/json"

	clientDomain "github.com/mosikk/nosql-airbnb/internal/domain/client"
	"go.uber.org/zap"
)

// CreateClientRequest holds the data needed to register a client.
type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// ClientDTO is the response representation of a client.
type ClientDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClientService handles client registration and cached reads.
type ClientService struct {
	clients clientDomain.Repository
	cache   EntityCache
	logger  *zap.Logger
}

// NewClientService creates a ClientService.
func NewClientService(clients clientDomain.Repository, cache EntityCache, logger *zap.Logger) *ClientService {
	return &ClientService{clients: clients, cache: cache, logger: logger}
}

// CreateClient registers a new client and returns its id.
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (string, error) {
	c, err := clientDomain.NewClient(req.Name)
	if err != nil {
		return "", err
	}
	if err := s.clients.Insert(ctx, c); err != nil {
		return "", err
	}
	return c.ID().Hex(), nil
}

// GetClient retrieves a client, read-through.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (*ClientDTO, error) {
	id, err := parseID(clientID)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.cache.Get(ctx, kindClient, id.Hex()); ok {
		var dto ClientDTO
		if err := json.Unmarshal(raw, &dto); err == nil {
			return &dto, nil
		}
	}

	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := ClientDTO{ID: c.ID().Hex(), Name: c.Name()}
	if payload, err := json.Marshal(dto); err == nil {
		s.cache.Set(ctx, kindClient, dto.ID, payload)
	}
	return &dto, nil
}
