// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package funeralhome

import (
	"context"

	"github.com/taibuivan/tributestream/internal/platform/upstream"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// UpstreamRepository implements [Repository] on the CMS collection.
type UpstreamRepository struct {
	resource *upstream.Resource[FuneralHome]
}

// NewUpstreamRepository creates a new UpstreamRepository.
func NewUpstreamRepository(client *upstream.Client) *UpstreamRepository {
	return &UpstreamRepository{resource: upstream.NewResource[FuneralHome](client, UpstreamPath)}
}

func (repository *UpstreamRepository) List(ctx context.Context, token string, query cmsquery.Query) (*upstream.Page[FuneralHome], error) {
	return repository.resource.List(ctx, token, query.Upstream())
}

func (repository *UpstreamRepository) Get(ctx context.Context, token, id string, query cmsquery.Query) (*FuneralHome, error) {
	return repository.resource.Get(ctx, token, id, query.Upstream())
}

func (repository *UpstreamRepository) Create(ctx context.Context, token string, attributes Attributes) (*FuneralHome, error) {
	return repository.resource.Create(ctx, token, attributes)
}

func (repository *UpstreamRepository) Update(ctx context.Context, token, id string, attributes Attributes) (*FuneralHome, error) {
	return repository.resource.Update(ctx, token, id, attributes)
}

func (repository *UpstreamRepository) Delete(ctx context.Context, token, id string) (*FuneralHome, error) {
	return repository.resource.Delete(ctx, token, id)
}
