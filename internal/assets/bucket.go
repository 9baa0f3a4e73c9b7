package assets

import (
	"context"
	"fmt"
	"os"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
)

const (
	DriverFile   = "file"
	DriverMemory = "mem"
)

// OpenBucket opens the photo bucket for driver. The file driver roots it at
// dir, creating the directory if needed.
func OpenBucket(ctx context.Context, driver, dir string) (*blob.Bucket, error) {
	switch driver {
	case DriverFile, "":
		if dir == "" {
			dir = "./data/image"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating asset directory: %w", err)
		}
		b, err := fileblob.OpenBucket(dir, nil)
		if err != nil {
			return nil, fmt.Errorf("error opening asset bucket: %w", err)
		}
		return b, nil
	case DriverMemory:
		return memblob.OpenBucket(nil), nil
	default:
		return nil, fmt.Errorf("unknown asset driver %s", driver)
	}
}
