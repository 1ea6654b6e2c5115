package search

import (
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/mosikk/nosql-airbnb/internal/domain"
	roomDomain "github.com/mosikk/nosql-airbnb/internal/domain/room"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// roomDoc is the room document shape held in the index.
type roomDoc struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// RoomIndex implements room.SearchIndex on Elasticsearch.
type RoomIndex struct {
	es    *elasticsearch.Client
	index string
}

// NewRoomIndex creates a RoomIndex writing to the named index.
func NewRoomIndex(es *elasticsearch.Client, index string) *RoomIndex {
	return &RoomIndex{es: es, index: index}
}

// Index propagates a room into the search index under its id.
func (i *RoomIndex) Index(ctx context.Context, r *roomDomain.Room) error {
	doc := roomDoc{
		Name:        r.Name(),
		Country:     r.Country(),
		City:        r.City(),
		Address:     r.Address(),
		Description: r.Description(),
	}
	return indexDocument(ctx, i.es, i.index, r.ID().Hex(), doc)
}

// FindBy returns rooms whose field matches term.
func (i *RoomIndex) FindBy(ctx context.Context, field roomDomain.SearchField, term string) ([]*roomDomain.Room, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"match": map[string]any{string(field): term}},
				},
			},
		},
	}

	hits, err := runSearch(ctx, i.es, i.index, query)
	if err != nil {
		return nil, err
	}

	rooms := make([]*roomDomain.Room, 0, len(hits))
	for _, hit := range hits {
		r, err := hitToRoom(hit)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}

func hitToRoom(hit searchHit) (*roomDomain.Room, error) {
	var doc roomDoc
	if err := json.Unmarshal(hit.Source, &doc); err != nil {
		return nil, domain.NewMalformedRecordError("indexed room", err)
	}
	id, err := primitive.ObjectIDFromHex(hit.ID)
	if err != nil {
		return nil, domain.NewMalformedRecordError("indexed room", err)
	}
	return roomDomain.Reconstruct(id, doc.Name, doc.Country, doc.City, doc.Address, doc.Description), nil
}
