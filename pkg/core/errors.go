package core

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups the raytracer's registered errors
const Codespace = "raytracer"

// Boundary errors. The rendering core itself never fails; these cover configuration,
// scene lookup and image output.
var (
	ErrInvalidConfig     = errorsmod.Register(Codespace, 2, "invalid configuration")
	ErrUnknownScene      = errorsmod.Register(Codespace, 3, "unknown scene")
	ErrUnsupportedFormat = errorsmod.Register(Codespace, 4, "unsupported output format")
	ErrOutput            = errorsmod.Register(Codespace, 5, "output failed")
)
