package image

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redisclient "github.com/eduzap/eduzap/cmd/redis"
	"github.com/eduzap/eduzap/model"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "image:"

// ErrNotFound is returned when no image is stored under the id.
var ErrNotFound = errors.New("image not found")

// ImageRepository stores uploaded request images in Redis
type ImageRepository interface {
	Save(ctx context.Context, id string, img model.StoredImage) error
	Get(ctx context.Context, id string) (*model.StoredImage, error)
	Delete(ctx context.Context, id string) error
	// Enabled reports whether a Redis client is configured.
	Enabled() bool
	// Ping returns redisclient.ErrDisabled when Redis is not configured.
	Ping(ctx context.Context) error
}

type imageRepository struct {
	ttl time.Duration
}

// NewImageRepository returns a Redis backed ImageRepository. A zero ttl keeps
// images until their request is deleted.
func NewImageRepository(ttl time.Duration) ImageRepository {
	return &imageRepository{ttl: ttl}
}

func (r *imageRepository) Enabled() bool {
	return redisclient.Get() != nil
}

// Save stores the image as JSON
func (r *imageRepository) Save(ctx context.Context, id string, img model.StoredImage) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	body, err := json.Marshal(img)
	if err != nil {
		return err
	}
	return client.Set(ctx, keyPrefix+id, body, r.ttl).Err()
}

// Get loads an image by id
func (r *imageRepository) Get(ctx context.Context, id string) (*model.StoredImage, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, ErrNotFound
	}
	body, err := client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var img model.StoredImage
	if err := json.Unmarshal(body, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// Delete removes an image, missing keys are ignored
func (r *imageRepository) Delete(ctx context.Context, id string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, keyPrefix+id).Err()
}

func (r *imageRepository) Ping(ctx context.Context) error {
	return redisclient.Ping(ctx)
}
