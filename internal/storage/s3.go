// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// uploaded images. Everything lives in one public bucket and is served
// directly by the storage endpoint or a CDN in front of it.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"folio/internal/slug"
)

// Client wraps an S3 client bound to the public uploads bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
	now       func() time.Time
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to
// start without storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}, nil
}

// maxKeyAttempts bounds how many names Upload tries before giving up.
const maxKeyAttempts = 4

// ObjectKey names an upload as "<unix millis>-<sanitised file name>".
func ObjectKey(at time.Time, filename string) string {
	return objectKey(at, filename, 0)
}

// objectKey adds "-<n>" after the timestamp for retries after a name clash.
func objectKey(at time.Time, filename string, n int) string {
	stamp := strconv.FormatInt(at.UnixMilli(), 10)
	if n > 0 {
		stamp += "-" + strconv.Itoa(n)
	}
	return stamp + "-" + slug.Filename(filename)
}

// Upload stores data under a fresh timestamped key with a public-read ACL
// and returns its public URL. The write is conditional on the key being
// absent; when another upload already holds the name, a suffixed key is
// tried instead.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	at := c.now()

	for n := 0; n < maxKeyAttempts; n++ {
		key := objectKey(at, filename, n)
		_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(c.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(contentType),
			ACL:           s3types.ObjectCannedACLPublicRead,
			IfNoneMatch:   aws.String("*"),
		})
		if err == nil {
			return c.FileURL(key), nil
		}
		if !keyTaken(err) {
			return "", fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
		}
	}
	return "", fmt.Errorf("s3 upload %s: no free key for %q after %d attempts", c.bucket, filename, maxKeyAttempts)
}

// keyTaken reports whether a conditional put failed because the key exists
// (412) or a concurrent conditional write to it is in progress (409).
func keyTaken(err error) bool {
	var status interface{ HTTPStatusCode() int }
	if !errors.As(err, &status) {
		return false
	}
	code := status.HTTPStatusCode()
	return code == http.StatusPreconditionFailed || code == http.StatusConflict
}

// FileURL returns the public URL for a key in the uploads bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}
