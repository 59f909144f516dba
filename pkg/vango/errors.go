package vango

import "errors"

// ErrNoOwner is the panic value of hooks called outside a component render.
// Hooks need an owner to store their state and to release it on unmount.
var ErrNoOwner = errors.New("vango: hook called outside component render")
