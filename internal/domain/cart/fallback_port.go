// internal/domain/cart/fallback_port.go
package cart

import "context"

// FallbackStore is the device-local persistence port used for anonymous
// sessions (the server-side rendition of the browser localStorage "cart"
// key). It stores one serialized line array per device.
//
// Not-found policy: Load returns (nil, nil) when the device has no cart.
type FallbackStore interface {
	Load(ctx context.Context, deviceID string) ([]Line, error)
	Save(ctx context.Context, deviceID string, lines []Line) error
}
