package wardrobe

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by repositories when an item does not exist.
var ErrNotFound = errors.New("item not found")

// Repository abstracts item persistence.
type Repository interface {
	Insert(ctx context.Context, item Item) (Item, error)
	Get(ctx context.Context, id string) (Item, bool, error)
	List(ctx context.Context, filter Filter) (ListResult, error)
	All(ctx context.Context) ([]Item, error)
	SetImageURL(ctx context.Context, id, url string) (Item, error)
	Delete(ctx context.Context, id string) error
}

// ImageStorage stores item pictures.
type ImageStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}
