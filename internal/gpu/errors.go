package gpu

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/1broseidon/topglass/internal/present"
)

// errNoSurfaceTexture is what a timed out, outdated or lost surface looks
// like through the binding: the acquisition status is dropped and the texture
// comes back with a nil native handle and no error. A reconfigure at the
// current size recovers all three.
var errNoSurfaceTexture = fmt.Errorf("%w: surface returned no texture", present.ErrSurfaceOutdated)

// checkSurfaceTexture rejects a texture without a native handle before
// anything dereferences it.
func checkSurfaceTexture(tex *wgpu.Texture) error {
	if tex == nil {
		return errNoSurfaceTexture
	}
	ref := reflect.ValueOf(tex).Elem().FieldByName("ref")
	if ref.IsValid() && ref.Kind() == reflect.Ptr && ref.IsNil() {
		return errNoSurfaceTexture
	}
	return nil
}

// acquireError wraps an error raised while acquiring a texture, which only
// happens for validation failures, with the matching present sentinel.
func acquireError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(strings.ReplaceAll(err.Error(), "_", ""))
	switch {
	case strings.Contains(msg, "outofmemory"), strings.Contains(msg, "out of memory"):
		return fmt.Errorf("%w: %v", present.ErrOutOfMemory, err)
	case strings.Contains(msg, "devicelost"), strings.Contains(msg, "device lost"):
		return fmt.Errorf("acquire texture: %w", err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %v", present.ErrSurfaceLost, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", present.ErrSurfaceOutdated, err)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %v", present.ErrSurfaceTimeout, err)
	default:
		return fmt.Errorf("acquire texture: %w", err)
	}
}
