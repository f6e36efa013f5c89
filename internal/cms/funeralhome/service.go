// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package funeralhome

import (
	"context"
	"regexp"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
	"github.com/taibuivan/tributestream/internal/platform/validate"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

var (
	zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phonePattern   = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$|^\d{3}-\d{3}-\d{4}$|^\d{10}$`)
)

const (
	msgNameMissing    = "Name is required"
	msgNameEmpty      = "Funeral home name is required"
	msgAddressMissing = "Address is required"
	msgStateCode      = "Please use two-letter state code"
	msgZipCode        = "Invalid zip code format"
	msgPhoneNumber    = "Invalid phone number format"
)

// Service validates writes and delegates to the [Repository].
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List forwards the descriptor and returns the page with its upstream meta.
func (service *Service) List(ctx context.Context, token string, query cmsquery.Query) (*upstream.Page[FuneralHome], error) {
	return service.repo.List(ctx, token, query)
}

// Get returns one funeral home. An empty upstream reply is reported as not found.
func (service *Service) Get(ctx context.Context, token, id string, query cmsquery.Query) (*FuneralHome, error) {
	home, err := service.repo.Get(ctx, token, id, query)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, apperr.NotFound("Funeral home")
	}
	return home, nil
}

/*
Create validates a full record and posts it upstream.

Returns:
  - *FuneralHome: The created record
  - error: VALIDATION_ERROR before any call, or the upstream failure
*/
func (service *Service) Create(ctx context.Context, token string, attributes Attributes) (*FuneralHome, error) {
	if err := validateAttributes(attributes, false); err != nil {
		return nil, err
	}
	return service.repo.Create(ctx, token, attributes)
}

// Update validates only the fields present and forwards them.
func (service *Service) Update(ctx context.Context, token, id string, attributes Attributes) (*FuneralHome, error) {
	if err := validateAttributes(attributes, true); err != nil {
		return nil, err
	}
	return service.repo.Update(ctx, token, id, attributes)
}

// Delete removes the record and returns the upstream's echo, possibly nil.
func (service *Service) Delete(ctx context.Context, token, id string) (*FuneralHome, error) {
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
	case attributes.Address != nil:
		validator.RequiredMsg(FieldAddress, *attributes.Address, msgAddressMissing)
	case !partial:
		validator.Custom(FieldAddress, true, msgAddressMissing)
	}

	if attributes.State != nil {
		validator.MaxLen(FieldState, *attributes.State, 2, msgStateCode)
	}
	if attributes.ZipCode != nil {
		validator.Match(FieldZipCode, *attributes.ZipCode, zipCodePattern, msgZipCode)
	}
	if attributes.PhoneNumber != nil {
		validator.Match(FieldPhoneNumber, *attributes.PhoneNumber, phonePattern, msgPhoneNumber)
	}

	return validator.Err()
}
