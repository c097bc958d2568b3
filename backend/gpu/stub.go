//go:build !gpu

package gpu

import "github.com/gogpu/termframe/backend"

// init registers a nil-returning factory when no GPU backend is built
// in. This allows code to compile without a GPU backend while still
// allowing backend.Get(backend.BackendGPU) to return nil gracefully.
func init() {
	backend.Register(backend.BackendGPU, func() backend.RenderBackend {
		return nil
	})
}
