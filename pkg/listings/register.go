package listings

import "github.com/mrchypark/shopclient"

// Register returns a shopclient option registering the products and
// collections resources, both fetched through getter.
func Register(getter Getter, opts ...Option) shopclient.Option {
	return shopclient.Combine(
		shopclient.WithResource(shopclient.ResourceProducts, ProductsAdapter(getter, opts...), ProductsSerializer()),
		shopclient.WithResource(shopclient.ResourceCollections, CollectionsAdapter(getter, opts...), CollectionsSerializer()),
	)
}
