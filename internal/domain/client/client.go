package client

import (
	"github.com/mosikk/nosql-airbnb/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a platform user able to book rooms. Immutable after creation.
type Client struct {
	id   primitive.ObjectID
	name string
}

// NewClient creates a client with a fresh identifier.
func NewClient(name string) (*Client, error) {
	if name == "" {
		return nil, domain.NewValidationError("client name is required")
	}
	return &Client{id: primitive.NewObjectID(), name: name}, nil
}

// Reconstruct rebuilds a Client from persistence data (no validation).
func Reconstruct(id primitive.ObjectID, name string) *Client {
	return &Client{id: id, name: name}
}

func (c *Client) ID() primitive.ObjectID { return c.id }
func (c *Client) Name() string           { return c.name }
