package loader

import (
	"fmt"
)

// AssetLoadError reports that an asset could not be fetched or parsed. The
// session treats it as permanent for that asset; nothing retries.
type AssetLoadError struct {
	// Path is the asset path or cache key that failed.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// asAssetLoadError wraps err unless it already is an AssetLoadError.
func asAssetLoadError(path string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*AssetLoadError); ok {
		return err
	}
	return &AssetLoadError{Path: path, Err: err}
}
