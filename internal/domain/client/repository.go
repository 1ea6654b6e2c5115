package client

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the record store contract for clients.
type Repository interface {
	Insert(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Client, error)
}
