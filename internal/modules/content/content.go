// Package content holds the cached copies of the public backend collections.
// Each collection sits behind a loader that is refreshed in the background;
// pages render from the cache and never block on the backend unless the
// cache is still cold. Admin-only collections (contact messages, dashboard
// stats) are not cached here because fetching them requires a session token.
package content

import (
	"context"
	"fmt"

	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/pkg/loader"
	pkgredis "github.com/kmabtech/web/internal/pkg/redis"
	"go.uber.org/zap"
)

// Store bundles the loaders for the publicly readable collections.
type Store struct {
	Facade *backend.Facade

	Services   *loader.Loader[backend.Service]
	Categories *loader.Loader[backend.Category]
	Products   *loader.Loader[backend.Product]
	References *loader.Loader[backend.Reference]
	BlogPosts  *loader.Loader[backend.BlogPost]
}

// NewStore creates loaders for each collection. rc may be nil.
func NewStore(f *backend.Facade, logger *zap.Logger, rc *pkgredis.Client) *Store {
	return &Store{
		Facade:     f,
		Services:   loader.New("services", f.ListServices, logger, rc),
		Categories: loader.New("categories", f.ListCategories, logger, rc),
		Products:   loader.New("products", f.ListProducts, logger, rc),
		References: loader.New("references", f.ListReferences, logger, rc),
		BlogPosts:  loader.New("blogposts", f.ListBlogPosts, logger, rc),
	}
}

// RefreshAll refetches every collection. Partial failure is reported but
// does not stop the remaining refetches.
func (s *Store) RefreshAll(ctx context.Context) error {
	var firstErr error
	for name, refetch := range map[string]func(context.Context) error{
		"services":   s.Services.Refetch,
		"categories": s.Categories.Refetch,
		"products":   s.Products.Refetch,
		"references": s.References.Refetch,
		"blogposts":  s.BlogPosts.Refetch,
	} {
		if err := refetch(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("refresh %s: %w", name, err)
		}
	}
	return firstErr
}
