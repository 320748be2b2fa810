// Package listings implements shopclient adapters and serializers for the
// Shopify sales-channel listings API (product_listings and collection_listings).
package listings

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/mrchypark/shopclient"
	"github.com/mrchypark/shopclient/pkg/transport"
)

// Getter is the transport used by adapters. *transport.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, req transport.Request) ([]byte, error)
}

// resource describes one listings endpoint and its payload keys.
type resource struct {
	path          string
	singleKey     string
	collectionKey string
}

var (
	productListings = resource{
		path:          "product_listings",
		singleKey:     "product_listing",
		collectionKey: "product_listings",
	}
	collectionListings = resource{
		path:          "collection_listings",
		singleKey:     "collection_listing",
		collectionKey: "collection_listings",
	}
)

type settings struct {
	baseURL string
}

// Option customizes the adapters built by this package.
type Option func(s *settings)

// WithBaseURL replaces the scheme and host derived from the shop domain
// (https://<domain>.myshopify.com). Used for proxies and tests.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// Adapter fetches one listings resource. It is built per call and holds no
// state besides its configuration.
type Adapter struct {
	cfg      *shopclient.Config
	getter   Getter
	resource resource
	settings settings
}

var _ shopclient.Adapter = (*Adapter)(nil)

// ProductsAdapter returns the factory of the products adapter.
func ProductsAdapter(getter Getter, opts ...Option) shopclient.AdapterFactory {
	return newAdapterFactory(getter, productListings, opts)
}

// CollectionsAdapter returns the factory of the collections adapter.
func CollectionsAdapter(getter Getter, opts ...Option) shopclient.AdapterFactory {
	return newAdapterFactory(getter, collectionListings, opts)
}

func newAdapterFactory(getter Getter, res resource, opts []Option) shopclient.AdapterFactory {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return func(cfg *shopclient.Config) shopclient.Adapter {
		return &Adapter{
			cfg:      cfg,
			getter:   getter,
			resource: res,
			settings: s,
		}
	}
}

// FetchSingle returns the raw JSON body of <resource>/<id>.
func (a *Adapter) FetchSingle(ctx context.Context, id any) (any, error) {
	segment, err := formatID(id)
	if err != nil {
		return nil, err
	}
	return a.get(ctx, a.resource.path+"/"+url.PathEscape(segment), nil)
}

// FetchCollection returns the raw JSON body of <resource>, filtered by query.
func (a *Adapter) FetchCollection(ctx context.Context, query any) (any, error) {
	values, err := EncodeQuery(query)
	if err != nil {
		return nil, err
	}
	return a.get(ctx, a.resource.path, values)
}

// get returns the body as an untyped raw value, or a nil interface on error.
func (a *Adapter) get(ctx context.Context, path string, values url.Values) (any, error) {
	u := a.channelURL() + "/" + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	body, err := a.getter.Get(ctx, transport.Request{URL: u, Header: a.headers()})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// channelURL is https://<domain>.myshopify.com/api/channels/<channel>.
func (a *Adapter) channelURL() string {
	base := a.settings.baseURL
	if base == "" {
		host := a.cfg.Domain()
		if !strings.Contains(host, ".") {
			host += ".myshopify.com"
		}
		base = "https://" + host
	}
	return base + "/api/channels/" + url.PathEscape(a.cfg.ChannelID())
}

func (a *Adapter) headers() http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(a.cfg.APIKey())))
	h.Set("Content-Type", "application/json")
	return h
}

// formatID accepts the id kinds formatValue accepts for scalar keys: strings
// and integers (named types included) and fmt.Stringer.
func formatID(id any) (string, error) {
	if id == nil {
		return "", &QueryError{Value: id, Reason: "id cannot be nil"}
	}

	var segment string
	if s, ok := id.(fmt.Stringer); ok {
		segment = s.String()
	} else if s, ok := formatKey(reflect.ValueOf(id)); ok {
		segment = s
	} else {
		return "", &QueryError{Value: id, Reason: fmt.Sprintf("unsupported id type %T", id)}
	}

	if segment == "" {
		return "", &QueryError{Value: id, Reason: "id cannot be empty"}
	}
	return segment, nil
}
