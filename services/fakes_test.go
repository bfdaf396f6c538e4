package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"e-guarding-cctv/console/gateway"

	"github.com/stretchr/testify/require"
)

// fakeRows is a function-field RowStore. Unset fields are no-ops.
type fakeRows struct {
	selectFn func(collection string, q *gateway.Query, dest any) error
	insertFn func(collection string, row any, dest any) error
	updateFn func(collection string, patch any, q *gateway.Query) error
	deleteFn func(collection string, q *gateway.Query) error
}

func (f *fakeRows) Select(_ context.Context, collection string, q *gateway.Query, dest any) error {
	if f.selectFn == nil {
		return nil
	}
	return f.selectFn(collection, q, dest)
}

func (f *fakeRows) Insert(_ context.Context, collection string, row any, dest any) error {
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(collection, row, dest)
}

func (f *fakeRows) Update(_ context.Context, collection string, patch any, q *gateway.Query) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(collection, patch, q)
}

func (f *fakeRows) Delete(_ context.Context, collection string, q *gateway.Query) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(collection, q)
}

// fill copies rows into a Select destination the way the gateway client's
// JSON decoding would.
func fill(t *testing.T, dest any, rows any) {
	t.Helper()
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

// asMap round-trips an inserted row or patch through JSON for assertions on
// its wire form.
func asMap(t *testing.T, row any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(row)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

type fakeObjects struct {
	uploaded  []string
	removed   []string
	uploadErr error
	removeErr error
}

func (f *fakeObjects) Upload(_ context.Context, bucket, path string, _ io.Reader, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, bucket+"/"+path)
	return nil
}

func (f *fakeObjects) Remove(_ context.Context, bucket, path string) error {
	f.removed = append(f.removed, bucket+"/"+path)
	return f.removeErr
}

func (f *fakeObjects) PublicURL(bucket, path string) string {
	return "http://gateway.test/storage/v1/object/public/" + bucket + "/" + path
}
