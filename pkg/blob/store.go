// Package blob holds decoded images in memory under ephemeral handles.
//
// Handles look like "blob:9f8b48f2-...". Only images registered here carry
// such a handle; anything else a caller passes around (file paths, http URLs)
// will fail the handle check, which is exactly how the assembler decides
// which sources it may rasterize.
package blob

import (
	"image"
	"strings"
	"sync"

	"github.com/google/uuid"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// Scheme is the prefix shared by every handle minted by a Store.
const Scheme = "blob:"

// IsHandle reports whether source is a blob handle.
func IsHandle(source string) bool {
	return strings.HasPrefix(source, Scheme)
}

// Store is an in-memory image registry. The zero value is not usable; create
// one with NewStore. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{images: make(map[string]image.Image)}
}

// Put registers img and returns its freshly minted handle.
func (s *Store) Put(img image.Image) string {
	handle := Scheme + uuid.NewString()
	s.mu.Lock()
	s.images[handle] = img
	s.mu.Unlock()
	return handle
}

// Resolve returns the image registered under source.
// It returns a BLOB_NOT_FOUND error for unknown or non-blob sources.
func (s *Store) Resolve(source string) (image.Image, error) {
	s.mu.RLock()
	img, ok := s.images[source]
	s.mu.RUnlock()
	if !ok {
		return nil, pberrors.New(pberrors.ErrCodeBlobNotFound, "no image registered for %s", source)
	}
	return img, nil
}

// Len returns the number of registered images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
