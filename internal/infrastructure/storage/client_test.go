package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObjectAPI struct {
	putErr    error
	deleteErr error

	putInputs    []*s3.PutObjectInput
	deleteInputs []*s3.DeleteObjectInput
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putInputs = append(f.putInputs, params)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleteInputs = append(f.deleteInputs, params)
	return &s3.DeleteObjectOutput{}, nil
}

func newTestClient(api *fakeObjectAPI) *Client {
	return &Client{
		s3:            api,
		bucket:        "atelier",
		publicBaseURL: "https://cdn.studioforma.example",
		logger:        zap.NewNop(),
	}
}

func TestUpload_StoresUnderKey(t *testing.T) {
	api := &fakeObjectAPI{}
	client := newTestClient(api)

	result, err := client.Upload(context.Background(), "documents/1700000000_site plan.pdf", "application/pdf", []byte("pdf-bytes"))

	require.NoError(t, err)
	require.Len(t, api.putInputs, 1)

	put := api.putInputs[0]
	assert.Equal(t, "atelier", *put.Bucket)
	assert.Equal(t, "documents/1700000000_site plan.pdf", *put.Key)
	assert.Equal(t, "application/pdf", *put.ContentType)

	body, err := io.ReadAll(put.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), body)

	assert.Equal(t, "documents/1700000000_site plan.pdf", result.Key)
	assert.Equal(t, "https://cdn.studioforma.example/documents/1700000000_site plan.pdf", result.PublicURL)
	assert.Equal(t, int64(len("pdf-bytes")), result.Size)
	assert.Equal(t, "application/pdf", result.MimeType)
}

func TestUpload_DefaultsContentType(t *testing.T) {
	api := &fakeObjectAPI{}
	client := newTestClient(api)

	result, err := client.Upload(context.Background(), "documents/1_notes.bin", "", []byte{0x01})

	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", *api.putInputs[0].ContentType)
	assert.Equal(t, "application/octet-stream", result.MimeType)
}

func TestRemove_UsesUploadedKeyVerbatim(t *testing.T) {
	api := &fakeObjectAPI{}
	client := newTestClient(api)

	key := "gallery/7/1700000000_façade study.jpg"
	result, err := client.Upload(context.Background(), key, "image/jpeg", []byte("jpg"))
	require.NoError(t, err)

	require.NoError(t, client.Remove(context.Background(), result.Key))

	require.Len(t, api.deleteInputs, 1)
	assert.Equal(t, *api.putInputs[0].Key, *api.deleteInputs[0].Key)
	assert.Equal(t, key, *api.deleteInputs[0].Key)
}

func TestUpload_Error(t *testing.T) {
	api := &fakeObjectAPI{putErr: errors.New("access denied")}
	client := newTestClient(api)

	_, err := client.Upload(context.Background(), "documents/1_plan.pdf", "application/pdf", []byte("x"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload object")
}

func TestRemove_Error(t *testing.T) {
	api := &fakeObjectAPI{deleteErr: errors.New("access denied")}
	client := newTestClient(api)

	err := client.Remove(context.Background(), "documents/1_plan.pdf")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete object")
}
