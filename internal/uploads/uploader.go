package uploads

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client the uploader uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores event images in an S3 bucket and returns publicly
// resolvable URLs for the stored objects.
type Uploader struct {
	client        S3API
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

func NewUploader(client S3API, bucket, publicBaseURL string) *Uploader {
	return &Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		now:           time.Now,
	}
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectKey derives a collision-resistant storage key from the original file
// name: a unix-timestamp prefix plus the sanitized base name.
func (u *Uploader) ObjectKey(filename string) string {
	base := path.Base(filename)
	base = unsafeKeyChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("events/%d-%s", u.now().Unix(), base)
}

// Upload stores the file content under a derived key and returns the public
// URL to record as the event's image reference.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := u.ObjectKey(filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url := u.publicBaseURL + "/" + key
	log.Printf("Uploaded event image to %s", url)
	return url, nil
}
