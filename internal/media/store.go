// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/taibuivan/tributestream/internal/platform/upstream"
)

// Repository defines the upstream operations on files.
type Repository interface {
	Upload(ctx context.Context, token string, upload Upload) ([]File, error)
	List(ctx context.Context, token string, query url.Values) ([]File, error)
	Get(ctx context.Context, token, id string) (*File, error)
	Delete(ctx context.Context, token, id string) (*File, error)
}

// UpstreamRepository implements [Repository] on the CMS upload plugin.
type UpstreamRepository struct {
	client *upstream.Client
	files  *upstream.Resource[File]
}

// NewUpstreamRepository creates a new UpstreamRepository.
func NewUpstreamRepository(client *upstream.Client) *UpstreamRepository {
	return &UpstreamRepository{
		client: client,
		files:  upstream.NewResource[File](client, PathFiles),
	}
}

/*
Upload streams the files and link fields to the upstream as a fresh
multipart body.

Returns:
  - []File: One record per uploaded file
  - error: Upstream or network failure
*/
func (repository *UpstreamRepository) Upload(ctx context.Context, token string, upload Upload) ([]File, error) {
	body, contentType := encodeMultipart(upload)
	defer body.Close()

	result, err := repository.client.Call(ctx, upstream.Request{
		Method:         http.MethodPost,
		Path:           PathUpload,
		Raw:            body,
		RawContentType: contentType,
		Token:          token,
	})
	if err != nil {
		return nil, err
	}

	files := []File{}
	if err := result.Decode(&files); err != nil {
		return nil, err
	}
	return files, nil
}

func (repository *UpstreamRepository) List(ctx context.Context, token string, query url.Values) ([]File, error) {
	page, err := repository.files.List(ctx, token, query)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (repository *UpstreamRepository) Get(ctx context.Context, token, id string) (*File, error) {
	return repository.files.Get(ctx, token, id, nil)
}

func (repository *UpstreamRepository) Delete(ctx context.Context, token, id string) (*File, error) {
	return repository.files.Delete(ctx, token, id)
}

// # Multipart Encoding

// encodeMultipart writes upload into a pipe from a separate goroutine. The
// writer stops as soon as the reader is closed.
func encodeMultipart(upload Upload) (io.ReadCloser, string) {
	reader, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	go func() {
		err := writeForm(form, upload)
		if err == nil {
			err = form.Close()
		}
		writer.CloseWithError(err)
	}()

	return reader, form.FormDataContentType()
}

func writeForm(form *multipart.Writer, upload Upload) error {
	for _, header := range upload.Files {
		if err := writeFile(form, header); err != nil {
			return err
		}
	}

	fields := []struct{ name, value string }{
		{FieldRefID, upload.RefID},
		{FieldRef, upload.Ref},
		{FieldField, upload.Field},
		{FieldPath, upload.Path},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := form.WriteField(field.name, field.value); err != nil {
			return fmt.Errorf("media: write field %s: %w", field.name, err)
		}
	}
	return nil
}

func writeFile(form *multipart.Writer, header *multipart.FileHeader) error {
	source, err := header.Open()
	if err != nil {
		return fmt.Errorf("media: open %s: %w", header.Filename, err)
	}
	defer source.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     FieldFiles,
		"filename": header.Filename,
	}))
	partHeader.Set("Content-Type", contentType)

	part, err := form.CreatePart(partHeader)
	if err != nil {
		return fmt.Errorf("media: create part %s: %w", header.Filename, err)
	}
	if _, err := io.Copy(part, source); err != nil {
		return fmt.Errorf("media: copy %s: %w", header.Filename, err)
	}
	return nil
}
