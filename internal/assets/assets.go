// Package assets stores missing-person photos in a blob bucket and hands
// out references of the form "/image/<key>".
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

// RefPrefix is prepended to every asset key to form its reference.
const RefPrefix = "/image/"

var (
	ErrNotFound     = errors.New("asset not found")
	ErrEmptyPayload = errors.New("empty photo payload")
	ErrStorage      = errors.New("asset storage failure")
)

type Manager struct {
	bucket *blob.Bucket
}

func NewManager(bucket *blob.Bucket) *Manager {
	return &Manager{bucket: bucket}
}

// Store writes the photo under "<uuid>_<base name>" and returns its reference.
func (m *Manager) Store(ctx context.Context, photo *models.Photo) (string, error) {
	if photo == nil || photo.Data == nil {
		return "", ErrEmptyPayload
	}

	key := uuid.NewString() + "_" + baseName(photo.Name)

	// cancelling the writer context before Close discards the partial blob
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := m.bucket.NewWriter(wctx, key, &blob.WriterOptions{ContentType: photo.ContentType})
	if err != nil {
		return "", fmt.Errorf("%w: opening writer for %s: %w", ErrStorage, key, err)
	}

	n, err := io.Copy(w, photo.Data)
	if err == nil && n == 0 {
		err = ErrEmptyPayload
	}
	if err != nil {
		cancel()
		_ = w.Close()
		if errors.Is(err, ErrEmptyPayload) {
			return "", err
		}
		return "", fmt.Errorf("%w: writing %s: %w", ErrStorage, key, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: committing %s: %w", ErrStorage, key, err)
	}

	return RefPrefix + key, nil
}

// Delete removes the asset behind ref. Unknown or malformed references are a no-op.
func (m *Manager) Delete(ctx context.Context, ref string) error {
	key, ok := KeyFromRef(ref)
	if !ok {
		return nil
	}

	if err := m.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return fmt.Errorf("%w: deleting %s: %w", ErrStorage, key, err)
	}
	return nil
}

// Open returns a reader for the asset behind ref. The caller closes it.
func (m *Manager) Open(ctx context.Context, ref string) (*blob.Reader, error) {
	key, ok := KeyFromRef(ref)
	if !ok {
		return nil, ErrNotFound
	}

	r, err := m.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: opening %s: %w", ErrStorage, key, err)
	}
	return r, nil
}

func (m *Manager) Exists(ctx context.Context, ref string) (bool, error) {
	key, ok := KeyFromRef(ref)
	if !ok {
		return false, nil
	}
	exists, err := m.bucket.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: checking %s: %w", ErrStorage, key, err)
	}
	return exists, nil
}

type Info struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// List returns every stored asset.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	var infos []Info
	it := m.bucket.List(nil)
	for {
		obj, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: listing assets: %w", ErrStorage, err)
		}
		if obj.IsDir {
			continue
		}
		infos = append(infos, Info{Key: obj.Key, Size: obj.Size, ModTime: obj.ModTime})
	}
	return infos, nil
}

// KeyFromRef extracts the bucket key from a reference. It also accepts a bare key.
func KeyFromRef(ref string) (string, bool) {
	key := strings.TrimPrefix(ref, RefPrefix)
	key = strings.TrimPrefix(key, "/")
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", false
	}
	return key, true
}

func baseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." || base == "" {
		return "photo"
	}
	return base
}
