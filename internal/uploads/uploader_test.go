package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func fixedUploader(client S3API) *Uploader {
	u := NewUploader(client, "tour-images", "https://cdn.example.com/")
	u.now = func() time.Time { return time.Unix(1756700000, 0) }
	return u
}

func TestObjectKey(t *testing.T) {
	u := fixedUploader(&fakeS3{})

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain name", "photo.jpg", "events/1756700000-photo.jpg"},
		{"spaces and unicode replaced", "горы алтая (1).jpg", "events/1756700000-1-.jpg"},
		{"path stripped", "../../etc/passwd", "events/1756700000-passwd"},
		{"empty falls back", "", "events/1756700000-image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, u.ObjectKey(tt.filename))
		})
	}
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	u := fixedUploader(client)

	url, err := u.Upload(context.Background(), "photo.jpg", "image/jpeg", strings.NewReader("data"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/events/1756700000-photo.jpg", url)

	require.NotNil(t, client.input)
	assert.Equal(t, "tour-images", *client.input.Bucket)
	assert.Equal(t, "events/1756700000-photo.jpg", *client.input.Key)
	assert.Equal(t, "image/jpeg", *client.input.ContentType)

	body, _ := io.ReadAll(client.input.Body)
	assert.Equal(t, "data", string(body))
}

func TestUpload_Error(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	u := fixedUploader(client)

	_, err := u.Upload(context.Background(), "photo.jpg", "image/jpeg", strings.NewReader("data"))

	assert.Error(t, err)
}
