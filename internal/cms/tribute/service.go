// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tribute

import (
	"context"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
	"github.com/taibuivan/tributestream/internal/platform/validate"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
	"github.com/taibuivan/tributestream/pkg/pointer"
	"github.com/taibuivan/tributestream/pkg/slug"
)

const (
	msgNameMissing = "Name is required"
	msgNameEmpty   = "Tribute name is required"
	msgSlugMissing = "Slug is required"
)

// Service validates writes and delegates to the [Repository].
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) List(ctx context.Context, token string, query cmsquery.Query) (*upstream.Page[Tribute], error) {
	return service.repo.List(ctx, token, query)
}

func (service *Service) Get(ctx context.Context, token, id string, query cmsquery.Query) (*Tribute, error) {
	tribute, err := service.repo.Get(ctx, token, id, query)
	if err != nil {
		return nil, err
	}
	if tribute == nil {
		return nil, apperr.NotFound("Tribute")
	}
	return tribute, nil
}

/*
Create validates and posts a new tribute.

Description: When no slug is given it is derived from the name, so
"José Álvarez" is stored as "jose-alvarez".

Returns:
  - *Tribute: The created record
  - error: VALIDATION_ERROR before any call, or the upstream failure
*/
func (service *Service) Create(ctx context.Context, token string, attributes Attributes) (*Tribute, error) {
	if attributes.Slug == nil && attributes.Name != nil {
		attributes.Slug = pointer.To(slug.From(*attributes.Name))
	}

	if err := validateAttributes(attributes, false); err != nil {
		return nil, err
	}
	return service.repo.Create(ctx, token, attributes)
}

// Update validates only the fields present and forwards them. The slug is
// never re-derived on update.
func (service *Service) Update(ctx context.Context, token, id string, attributes Attributes) (*Tribute, error) {
	if err := validateAttributes(attributes, true); err != nil {
		return nil, err
	}
	return service.repo.Update(ctx, token, id, attributes)
}

func (service *Service) Delete(ctx context.Context, token, id string) (*Tribute, error) {
	return service.repo.Delete(ctx, token, id)
}

// # Validation

func validateAttributes(attributes Attributes, partial bool) error {
	validator := &validate.Validator{}

	switch {
	case attributes.Name != nil:
		validator.RequiredMsg(FieldName, *attributes.Name, msgNameEmpty)
	case !partial:
		validator.Custom(FieldName, true, msgNameMissing)
	}

	switch {
	case attributes.Slug != nil && *attributes.Slug == "":
		validator.Custom(FieldSlug, true, msgSlugMissing)
	case attributes.Slug != nil:
		validator.Slug(FieldSlug, *attributes.Slug)
	case !partial:
		validator.Custom(FieldSlug, true, msgSlugMissing)
	}

	if attributes.Status != nil {
		validator.OneOf(FieldStatus, *attributes.Status,
			string(StatusDraft), string(StatusPublished), string(StatusArchived))
	}

	return validator.Err()
}
