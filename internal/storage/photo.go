package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/sharpside-app/sharpener-booking/internal/config"
)

// ======================================================
// LOCATION PHOTO STORE
// ======================================================

// Uploads are re-encoded to webp before hitting the bucket, so the
// bucket never stores whatever bytes the client sent.
const (
	maxPhotoWidth = 1280
	webpQuality   = 82
)

type PhotoStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKey,
				cfg.AWSSecretKey,
				"",
			),
		),
	})

	return &PhotoStore{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}
}

// Upload decodes, downscales and webp-encodes the image, stores it
// under the given key and returns the public URL.
func (s *PhotoStore) Upload(ctx context.Context, key string, r io.Reader) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	src = downscale(src, maxPhotoWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	fullKey := key + ".webp"

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey), nil
}

func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
