package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Storage buckets owned by the platform.
const (
	BucketAIModels = "ai-models"
	BucketDatasets = "datasets"
)

// Upload stores an object under bucket/path. Paths are client-generated; see
// ObjectKey.
func (c *Client) Upload(ctx context.Context, bucket, path string, body io.Reader, contentType string) error {
	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, url.PathEscape(bucket), url.PathEscape(path))
	req, err := c.newRequest(ctx, http.MethodPost, u, body)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, nil)
}

// Remove deletes an object. Callers treat failures as best-effort.
func (c *Client) Remove(ctx context.Context, bucket, path string) error {
	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, url.PathEscape(bucket), url.PathEscape(path))
	req, err := c.newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ObjectKey builds a client-generated storage path: a random token plus the
// original filename, with path separators stripped from the name.
func ObjectKey(filename string) string {
	name := strings.ReplaceAll(filename, "/", "_")
	return uuid.NewString() + "_" + name
}

func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, url.PathEscape(bucket), url.PathEscape(path))
}
