// Package model holds the consumer-facing models built by the listings
// serializer. Models keep a reference to the client that produced them so they
// can fetch related resources.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/mrchypark/shopclient"
)

// Product is a product published to the sales channel.
type Product struct {
	ID          int64      `json:"product_id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	BodyHTML    string     `json:"body_html"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Tags        string     `json:"tags"`
	Available   bool       `json:"available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Images      []Image    `json:"images"`
	Options     []Option   `json:"options"`
	Variants    []Variant  `json:"variants"`

	client shopclient.Client
}

// Image is a product image.
type Image struct {
	ID         int64   `json:"id"`
	Src        string  `json:"src"`
	Position   int     `json:"position"`
	VariantIDs []int64 `json:"variant_ids"`
}

// Option is a product option such as size or color.
type Option struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// OptionValue is the value a variant takes for one option.
type OptionValue struct {
	OptionID int64  `json:"option_id"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// Variant is a purchasable variant of a product.
type Variant struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Price            string        `json:"price"`
	CompareAtPrice   string        `json:"compare_at_price,omitempty"`
	SKU              string        `json:"sku"`
	Available        bool          `json:"available"`
	Grams            int           `json:"grams"`
	RequiresShipping bool          `json:"requires_shipping"`
	Position         int           `json:"position"`
	ImageID          *int64        `json:"image_id,omitempty"`
	OptionValues     []OptionValue `json:"option_values"`
}

// Bind attaches the client that produced p. It is called by serializers.
func (p *Product) Bind(client shopclient.Client) {
	p.client = client
}

// Client returns the client that produced p, or nil for a detached product.
func (p *Product) Client() shopclient.Client {
	return p.client
}

// Variant returns the variant with the given id.
func (p *Product) Variant(id int64) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// Reload fetches p again through the client that produced it.
func (p *Product) Reload(ctx context.Context) (*Product, error) {
	if p.client == nil {
		return nil, ErrDetached
	}
	m, err := p.client.FetchOne(ctx, shopclient.ResourceProducts, p.ID)
	if err != nil {
		return nil, err
	}
	fresh, ok := m.(*Product)
	if !ok {
		return nil, fmt.Errorf("model: products resource produced %T", m)
	}
	return fresh, nil
}
