// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package funeralhome

import (
	"context"

	"github.com/taibuivan/tributestream/internal/platform/upstream"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// Repository defines the upstream operations on funeral homes. Each method
// performs exactly one call and forwards token as-is.
type Repository interface {
	List(ctx context.Context, token string, query cmsquery.Query) (*upstream.Page[FuneralHome], error)
	Get(ctx context.Context, token, id string, query cmsquery.Query) (*FuneralHome, error)
	Create(ctx context.Context, token string, attributes Attributes) (*FuneralHome, error)
	Update(ctx context.Context, token, id string, attributes Attributes) (*FuneralHome, error)
	Delete(ctx context.Context, token, id string) (*FuneralHome, error)
}
