package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	m "gofold.dev/pkg/gofold/internal/model"
)

var (
	// ErrForeignLocation is returned when a location lies outside the codec's image.
	ErrForeignLocation = errors.New("location outside of image")
	// ErrKeyOutOfRange is returned when a key points past the end of the image.
	ErrKeyOutOfRange = errors.New("key outside of image")
)

// LocationCodec converts between volatile locations and keys that survive rebasing.
type LocationCodec interface {
	Encode(loc m.Location) (m.StableKey, error)
	Decode(key m.StableKey) (m.Location, error)
}

type imageCodec struct {
	image *m.Image
}

// NewImageCodec returns a LocationCodec relative to the current base of img.
// The base is read on every call, so a codec stays valid when img is rebased.
func NewImageCodec(img *m.Image) LocationCodec {
	return &imageCodec{image: img}
}

func (c *imageCodec) Encode(loc m.Location) (m.StableKey, error) {
	if !c.image.Contains(loc) {
		return 0, fmt.Errorf("%w: %s not in %s", ErrForeignLocation, loc, c.image.Name)
	}

	return m.StableKey(int(loc) - c.image.Base), nil
}

func (c *imageCodec) Decode(key m.StableKey) (m.Location, error) {
	if key > m.StableKey(c.image.Size()) {
		return m.NoLocation, fmt.Errorf("%w: %#x past %s", ErrKeyOutOfRange, uint64(key), c.image.Name)
	}

	return m.Location(c.image.Base + int(key)), nil
}

// KeysToBlob packs keys into fixed width little endian records.
func KeysToBlob(keys []m.StableKey) []byte {
	blob := make([]byte, 0, len(keys)*m.StableKeySize)
	for _, key := range keys {
		blob = binary.LittleEndian.AppendUint64(blob, uint64(key))
	}

	return blob
}

// BlobToKeys unpacks a blob written by KeysToBlob. A trailing partial record
// is ignored.
func BlobToKeys(blob []byte) []m.StableKey {
	if rest := len(blob) % m.StableKeySize; rest != 0 {
		slog.Warn("ignoring truncated fold key", "bytes", rest)
		blob = blob[:len(blob)-rest]
	}

	keys := make([]m.StableKey, 0, len(blob)/m.StableKeySize)
	for i := 0; i < len(blob); i += m.StableKeySize {
		keys = append(keys, m.StableKey(binary.LittleEndian.Uint64(blob[i:])))
	}

	return keys
}
