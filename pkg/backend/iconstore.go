package backend

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"
)

// IconStore persists uploaded icon images and returns a public URL.
type IconStore interface {
	Upload(key, contentType string, data []byte) (string, error)
}

type s3IconStore struct {
	bucket string
	region string

	Svc *s3.S3
}

func NewS3IconStore(bucket, region string) (IconStore, error) {
	s, err := session.NewSession(&aws.Config{
		Region:     aws.String(region),
		MaxRetries: aws.Int(3),
	})
	if err != nil {
		return nil, err
	}

	return &s3IconStore{
		bucket: bucket,
		region: region,
		Svc:    s3.New(s),
	}, nil
}

func (s *s3IconStore) Upload(key, contentType string, data []byte) (string, error) {
	if _, err := s.Svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	}); err != nil {
		return "", fmt.Errorf("failed to upload icon %v: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	logrus.Debugf("uploaded icon to %s", url)
	return url, nil
}
