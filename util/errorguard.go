package util

import (
	"github.com/pkg/errors"
)

// ErrorGuard runs fn and converts a panic into a returned error, so a
// misbuilt document or a nil dereference in one handler cannot take
// down the event loop.
func ErrorGuard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("handler panic: %v", r)
		}
	}()
	return fn()
}
