// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"net/url"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/validate"
)

const msgNoFiles = "No files provided"

// Service validates uploads and delegates to the [Repository].
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upload forwards at least one file; an empty submission never leaves the gateway.
func (service *Service) Upload(ctx context.Context, token string, upload Upload) ([]File, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldFiles, len(upload.Files) == 0, msgNoFiles)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.repo.Upload(ctx, token, upload)
}

func (service *Service) List(ctx context.Context, token string, query url.Values) ([]File, error) {
	return service.repo.List(ctx, token, query)
}

func (service *Service) Get(ctx context.Context, token, id string) (*File, error) {
	file, err := service.repo.Get(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperr.NotFound("File")
	}
	return file, nil
}

func (service *Service) Delete(ctx context.Context, token, id string) (*File, error) {
	return service.repo.Delete(ctx, token, id)
}
