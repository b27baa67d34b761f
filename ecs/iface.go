package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value. View uses it to
// take the data pointer out of the *T a pool hands back as any.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
