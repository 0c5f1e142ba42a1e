package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicLinkRoundTrip(t *testing.T) {
	s := &awsS3{bucket: "surplus", region: "ap-southeast-1"}

	link := s.GetPublicLinkKey("food-images/abc.png")
	assert.Equal(t, "https://surplus.s3.ap-southeast-1.amazonaws.com/food-images/abc.png", link)
	assert.Equal(t, "food-images/abc.png", s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://example.com/food-images/abc.png"))
}

func TestNewAwsS3RequiresBucket(t *testing.T) {
	_, err := NewAwsS3(context.Background(), S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
