package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrchypark/shopclient"
)

// ErrDetached is returned by model methods that need a client when the model
// was not produced by one.
var ErrDetached = errors.New("model: model is not bound to a client")

// Collection is a collection published to the sales channel.
type Collection struct {
	ID          int64            `json:"collection_id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	SortOrder   string           `json:"sort_order"`
	Image       *CollectionImage `json:"image,omitempty"`
	PublishedAt *time.Time       `json:"published_at,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`

	client shopclient.Client
}

// CollectionImage is the image shown for a collection.
type CollectionImage struct {
	Src       string    `json:"src"`
	CreatedAt time.Time `json:"created_at"`
}

// Bind attaches the client that produced c.
func (c *Collection) Bind(client shopclient.Client) {
	c.client = client
}

// Client returns the client that produced c.
func (c *Collection) Client() shopclient.Client {
	return c.client
}

// Products fetches the products of the collection through the client that
// produced it.
func (c *Collection) Products(ctx context.Context) ([]*Product, error) {
	if c.client == nil {
		return nil, ErrDetached
	}

	models, err := c.client.FetchQuery(ctx, shopclient.ResourceProducts, map[string]any{"collection_id": c.ID})
	if err != nil {
		return nil, err
	}

	products := make([]*Product, 0, len(models))
	for _, m := range models {
		p, ok := m.(*Product)
		if !ok {
			return nil, fmt.Errorf("model: products resource produced %T", m)
		}
		products = append(products, p)
	}
	return products, nil
}
