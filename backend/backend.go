package backend

import (
	"errors"

	"github.com/gogpu/termframe"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrNilPayload is returned when Render is called with a nil payload.
	ErrNilPayload = errors.New("backend: nil payload")

	// ErrRenderFailed wraps backend-specific render failures so producers
	// can match on it with errors.Is.
	ErrRenderFailed = errors.New("backend: render failed")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based software backend.
	BackendSoftware = "software"
	// BackendGPU is the name of the GPU backend slot. The concrete GPU
	// backend lives outside this module and registers itself here.
	BackendGPU = "gpu"
)

// RenderBackend is the full lifecycle surface of a rendering backend:
// the per-frame contract from termframe plus construction and teardown.
//
// Lifecycle: a factory-created backend is Uninitialized until Init
// succeeds, Ready between frames, Rendering during a Render call, and
// Torn down after Close. Render must not be called before Init or after
// Close.
type RenderBackend interface {
	termframe.Backend

	// Name returns the backend identifier (e.g. "software", "gpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()
}
