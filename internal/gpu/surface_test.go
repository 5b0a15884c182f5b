package gpu

import (
	"reflect"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

// Surface textures carry no device reference of their own, so a frame must
// never hold one it could release.
func TestFrame_DoesNotOwnSurfaceTexture(t *testing.T) {
	texType := reflect.TypeOf(&wgpu.Texture{})
	typ := reflect.TypeOf(frame{})
	for i := 0; i < typ.NumField(); i++ {
		assert.NotEqual(t, texType, typ.Field(i).Type, "frame field %s", typ.Field(i).Name)
	}
}

func TestFrame_ReleaseWithoutViewIsSafe(t *testing.T) {
	f := &frame{}
	assert.NotPanics(t, f.Release)
	assert.NotPanics(t, f.Release)
}
