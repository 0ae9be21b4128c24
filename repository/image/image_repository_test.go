package image_test

import (
	"context"
	"testing"

	redisclient "github.com/eduzap/eduzap/cmd/redis"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/repository/image"
	"github.com/stretchr/testify/assert"
)

func TestImageRepository_WithoutRedis(t *testing.T) {
	redisclient.Set(nil)
	repo := image.NewImageRepository(0)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.Save(ctx, "a", model.StoredImage{ContentType: "image/png", Data: []byte{1}}))
	assert.NoError(t, repo.Delete(ctx, "a"))

	img, err := repo.Get(ctx, "a")
	assert.Nil(t, img)
	assert.ErrorIs(t, err, image.ErrNotFound)
	assert.ErrorIs(t, repo.Ping(ctx), redisclient.ErrDisabled)
}
