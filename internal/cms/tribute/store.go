// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tribute

import (
	"context"

	"github.com/taibuivan/tributestream/internal/platform/upstream"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// Repository defines the upstream operations on tributes.
type Repository interface {
	List(ctx context.Context, token string, query cmsquery.Query) (*upstream.Page[Tribute], error)
	Get(ctx context.Context, token, id string, query cmsquery.Query) (*Tribute, error)
	Create(ctx context.Context, token string, attributes Attributes) (*Tribute, error)
	Update(ctx context.Context, token, id string, attributes Attributes) (*Tribute, error)
	Delete(ctx context.Context, token, id string) (*Tribute, error)
}

// UpstreamRepository implements [Repository] on the CMS collection.
type UpstreamRepository struct {
	resource *upstream.Resource[Tribute]
}

// NewUpstreamRepository creates a new UpstreamRepository.
func NewUpstreamRepository(client *upstream.Client) *UpstreamRepository {
	return &UpstreamRepository{resource: upstream.NewResource[Tribute](client, UpstreamPath)}
}

func (repository *UpstreamRepository) List(ctx context.Context, token string, query cmsquery.Query) (*upstream.Page[Tribute], error) {
	return repository.resource.List(ctx, token, query.Upstream())
}

func (repository *UpstreamRepository) Get(ctx context.Context, token, id string, query cmsquery.Query) (*Tribute, error) {
	return repository.resource.Get(ctx, token, id, query.Upstream())
}

func (repository *UpstreamRepository) Create(ctx context.Context, token string, attributes Attributes) (*Tribute, error) {
	return repository.resource.Create(ctx, token, attributes)
}

func (repository *UpstreamRepository) Update(ctx context.Context, token, id string, attributes Attributes) (*Tribute, error) {
	return repository.resource.Update(ctx, token, id, attributes)
}

func (repository *UpstreamRepository) Delete(ctx context.Context, token, id string) (*Tribute, error) {
	return repository.resource.Delete(ctx, token, id)
}
