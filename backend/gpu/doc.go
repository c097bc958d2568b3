// Package gpu reserves the registry slot for a GPU rendering backend.
//
// The concrete GPU backend (device and swap-chain ownership, glyph atlas
// upload, draw call emission) lives outside this module and registers
// itself under backend.BackendGPU when built in. Without one, this
// package registers a nil-returning factory so backend selection
// degrades gracefully to the software backend.
package gpu
