package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// FilePart is one binary attachment of a multipart request.
type FilePart struct {
	Field    string // form field name, e.g. "rc", "license", "profilePhoto"
	Filename string
	Content  []byte
}

// PostMultipart issues a multipart/form-data POST carrying scalar fields and
// binary attachments; the driver registration upload is the one caller.
func (g *Gateway) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out any, opts ...RequestOption) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("gateway: write field %q: %w", key, err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("gateway: attach %q: %w", file.Field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("gateway: attach %q: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("gateway: finalize multipart body: %w", err)
	}

	return g.do(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), out, opts...)
}
