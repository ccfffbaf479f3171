// Package background obtains the decorative factory floor image once and
// keeps it in persistent storage.
package background

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"factory_floor/ai"
	"factory_floor/instructions"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// StorageKey is the single slot the image is cached under.
const StorageKey = "factory_bg"

const defaultMIMEType = "image/png"

// Store is the persistent key-value capability. TrySet reports failure
// instead of returning an error.
type Store interface {
	Get(key string) (string, bool)
	TrySet(key, value string) bool
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ai.ImageRequest) (ai.Image, error)
}

type Cache struct {
	store Store
	gen   ImageGenerator
	model string

	group singleflight.Group

	mu        sync.Mutex
	attempted bool
	image     string
}

// NewCache returns a cache over store. A nil gen disables generation, so only
// a previously stored image can be returned.
func NewCache(store Store, gen ImageGenerator, model string) *Cache {
	return &Cache{store: store, gen: gen, model: model}
}

// Load returns the background as a data URI, or false when none is available
// and the caller should draw its procedural background. Generation is tried
// at most once per Cache and is not cut short when ctx is cancelled.
func (c *Cache) Load(ctx context.Context) (string, bool) {
	v, _, _ := c.group.Do(StorageKey, func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.attempted {
			return c.image, nil
		}
		c.image = c.load(context.WithoutCancel(ctx))
		c.attempted = true
		return c.image, nil
	})

	image := v.(string)
	return image, image != ""
}

func (c *Cache) load(ctx context.Context) string {
	if saved, ok := c.store.Get(StorageKey); ok && saved != "" {
		logrus.Debug("Using cached factory background")
		return saved
	}

	if c.gen == nil {
		logrus.Info("Background image generation disabled, using procedural background")
		return ""
	}

	img, err := c.gen.GenerateImage(ctx, ai.ImageRequest{
		Model:       c.model,
		Prompt:      instructions.BackgroundPrompt,
		Count:       1,
		AspectRatio: "16:9",
	})
	if err != nil {
		logrus.WithError(err).Error("Background generation failed")
		return ""
	}

	uri, err := NormalizeDataURI(img)
	if err != nil {
		logrus.WithError(err).Error("Background generation returned unusable image")
		return ""
	}

	if !c.store.TrySet(StorageKey, uri) {
		logrus.WithField("size", len(uri)).Warn("Could not save background to storage, keeping it for this session only")
	}
	return uri
}

// NormalizeDataURI turns raw or base64 image data into an embeddable data URI.
func NormalizeDataURI(img ai.Image) (string, error) {
	mime := img.MIMEType
	if mime == "" {
		mime = defaultMIMEType
	}

	switch {
	case len(img.Data) > 0:
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data), nil
	case img.Base64 != "":
		payload := strings.TrimSpace(img.Base64)
		if strings.HasPrefix(payload, "data:") {
			return payload, nil
		}
		if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
			return "", fmt.Errorf("image payload is not base64: %w", err)
		}
		return "data:" + mime + ";base64," + payload, nil
	}
	return "", ai.ErrNoImage
}

// DecodeDataURI splits a base64 data URI into its MIME type and bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URI has no payload")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, errors.New("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	if mime == "" {
		mime = defaultMIMEType
	}
	return mime, data, nil
}
