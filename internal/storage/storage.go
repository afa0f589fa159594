package storage

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"radio-orbit/internal/config"
)

// Client stores and serves recorded clips through the configured backend.
type Client struct {
	backend Provider
	bucket  string
}

func New(cfg *config.Config) *Client {
	var backend Provider

	if cfg.Storage.Provider == "local" {
		backend = NewLocalProvider(cfg.Storage.LocalRoot)
	} else {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	}

	return &Client{
		backend: backend,
		bucket:  cfg.Storage.Bucket,
	}
}

func (c *Client) SaveClip(key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(c.bucket, key, body, contentType)
}

func (c *Client) OpenClip(key string) (*FileObject, error) {
	return c.backend.Get(c.bucket, key)
}

func (c *Client) DeleteClip(key string) error {
	return c.backend.Delete(c.bucket, key)
}

func (c *Client) ListClips(prefix string) ([]string, error) {
	return c.backend.List(c.bucket, prefix)
}
