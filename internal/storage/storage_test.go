package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsObjectKey(t *testing.T) {
	cases := map[string]bool{
		"products/n1.jpg":                true,
		"n1.jpg":                         true,
		"img/product/n1.jpg":             false,
		"/static/n1.jpg":                 false,
		"https://cdn.example.com/n1.jpg": false,
		"//cdn.example.com/n1.jpg":       false,
		"data:image/png;base64,AAAA":     false,
		"":                               false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsObjectKey(in), "image %q", in)
	}
}

type fakePresigner struct {
	err  error
	keys []string
}

func (f *fakePresigner) PresignImage(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	return "https://minio.local/shop/" + key + "?X-Amz-Expires=" + ttl.String(), nil
}

func (f *fakePresigner) Health(context.Context) error { return nil }

func TestImageResolver(t *testing.T) {
	p := &fakePresigner{}
	r := NewImageResolver(p, time.Hour, logger.Discard())
	ctx := context.Background()

	assert.Equal(t, "img/product/n1.jpg", r.Resolve(ctx, "img/product/n1.jpg"))
	assert.Equal(t, "https://minio.local/shop/products/f1.jpg?X-Amz-Expires=1h0m0s", r.Resolve(ctx, "products/f1.jpg"))
	assert.Equal(t, []string{"products/f1.jpg"}, p.keys)
}

func TestImageResolver_DegradesOnError(t *testing.T) {
	r := NewImageResolver(&fakePresigner{err: errors.New("denied")}, time.Hour, logger.Discard())
	assert.Equal(t, "products/f1.jpg", r.Resolve(context.Background(), "products/f1.jpg"))

	var nilResolver *ImageResolver
	assert.Equal(t, "products/f1.jpg", nilResolver.Resolve(context.Background(), "products/f1.jpg"))
}

func TestLoadConfig(t *testing.T) {
	for _, k := range []string{"S3_ENDPOINT", "S3_PUBLIC_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET_NAME", "S3_REGION"} {
		t.Setenv(k, "")
	}
	_, ok, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, ok)

	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_BUCKET_NAME", "shop")
	_, _, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")
	cfg, ok, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "minio:9000", cfg.PublicEndpoint)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "http://minio:9000", cfg.url(cfg.Endpoint))
}

func TestPresignImage_Offline(t *testing.T) {
	p, err := New(context.Background(), Config{
		Endpoint:       "minio:9000",
		PublicEndpoint: "assets.example.com",
		AccessKey:      "ak",
		SecretKey:      "sk",
		Bucket:         "shop",
		Region:         "us-east-1",
	})
	require.NoError(t, err)

	url, err := p.PresignImage(context.Background(), "products/f1.jpg", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "http://assets.example.com/shop/products/f1.jpg")
	assert.Contains(t, url, "X-Amz-Expires=600")

	_, err = p.PresignImage(context.Background(), "", time.Minute)
	assert.Error(t, err)
}
