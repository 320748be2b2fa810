package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/redis/go-redis/v9"
	"github.com/thanos-io/objstore/providers/filesystem"
	"golang.org/x/sync/errgroup"

	"github.com/mrchypark/shopclient"
	"github.com/mrchypark/shopclient/internal/config"
	"github.com/mrchypark/shopclient/pkg/listings"
	"github.com/mrchypark/shopclient/pkg/policy"
	"github.com/mrchypark/shopclient/pkg/store"
	"github.com/mrchypark/shopclient/pkg/store/bucketstore"
	"github.com/mrchypark/shopclient/pkg/store/memstore"
	"github.com/mrchypark/shopclient/pkg/store/redisstore"
	"github.com/mrchypark/shopclient/pkg/transport"
	"github.com/mrchypark/shopclient/pkg/typed"
)

// fetchConcurrency bounds the requests issued for a multi-id get.
const fetchConcurrency = 4

// app is a configured client plus what must be released after the command.
type app struct {
	client  *shopclient.ShopClient
	logger  log.Logger
	closers []func() error
}

func newApp(flags *rootFlags) (*app, error) {
	logger := newLogger(flags.verbose)

	file, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := file.ShopConfig()
	if err != nil {
		return nil, err
	}

	a := &app{logger: logger}

	topts := []transport.Option{transport.WithTimeout(file.HTTP.Timeout)}
	if file.HTTP.RateLimit > 0 {
		topts = append(topts, transport.WithRateLimit(file.HTTP.RateLimit, file.HTTP.Burst))
	}
	st, err := a.openStore(file.Cache)
	if err != nil {
		return nil, err
	}
	if st != nil {
		topts = append(topts, transport.WithStore(st))
	}

	tr, err := transport.New(logger, topts...)
	if err != nil {
		a.close()
		return nil, err
	}

	var lopts []listings.Option
	if file.HTTP.BaseURL != "" {
		lopts = append(lopts, listings.WithBaseURL(file.HTTP.BaseURL))
	}

	a.client, err = shopclient.New(logger, cfg, listings.Register(tr, lopts...))
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(c config.CacheConfig) (store.Store, error) {
	switch strings.ToLower(c.Backend) {
	case "", config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return memstore.New(c.Capacity, policy.NewLRU()), nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: c.Addr})
		a.closers = append(a.closers, rdb.Close)
		return redisstore.New(rdb, a.logger, c.TTL), nil
	case config.BackendObjstore:
		bkt, err := filesystem.NewBucket(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("open cache dir %s: %w", c.Dir, err)
		}
		a.closers = append(a.closers, bkt.Close)
		return bucketstore.New(bkt, "", a.logger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

func (a *app) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			level.Warn(a.logger).Log("msg", "failed to close cache backend", "err", err)
		}
	}
	a.closers = nil
}

// fetchMany fetches every id concurrently and returns the models in the order
// of ids. The first error cancels the rest.
func fetchMany[T any](ctx context.Context, r *typed.Resource[T], ids []string) ([]T, error) {
	out := make([]T, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			m, err := r.One(ctx, id)
			if err != nil {
				return fmt.Errorf("get %s: %w", id, err)
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseQuery turns repeated k=v flags into a query map.
func parseQuery(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query %q, want key=value", p)
		}
		q[k] = v
	}
	return q, nil
}
