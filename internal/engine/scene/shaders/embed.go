// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader is the vertex shader shared by terrain and models.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader applies sun, ambient and exponential fog.
//
//go:embed lit.frag
var LitFragmentShader string

// OverlayVertexShader is the vertex shader for screen-space quads.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader samples the overlay texture.
//
//go:embed overlay.frag
var OverlayFragmentShader string
