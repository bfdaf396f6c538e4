package services

import (
	"context"
	"io"

	"e-guarding-cctv/console/gateway"
)

// RowStore is the slice of the gateway rows API the view services use.
// *gateway.Client satisfies it.
type RowStore interface {
	Select(ctx context.Context, collection string, q *gateway.Query, dest any) error
	Insert(ctx context.Context, collection string, row any, dest any) error
	Update(ctx context.Context, collection string, patch any, q *gateway.Query) error
	Delete(ctx context.Context, collection string, q *gateway.Query) error
}

// ObjectStore is the gateway file storage interface.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, body io.Reader, contentType string) error
	Remove(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}

// UploadFile carries a file submitted through a form.
type UploadFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}
