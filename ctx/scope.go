// File: ctx/scope.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scoped-acquisition runner shared by the three context types. The exit
// func is guaranteed to run on every path out of the body: clean return,
// error return, and panic. A panicking body still has its panic-derived
// cause passed to exit before the panic resumes.

package ctx

import (
	"context"
	"errors"
	"fmt"
)

// runScoped runs body and always invokes exit with the body's failure (nil
// on success). The body error is re-raised to the caller after cleanup;
// when both the body and exit fail, both errors are returned joined.
func runScoped(octx context.Context, body func(context.Context) error, exit func(error) error) error {
	defer func() {
		if r := recover(); r != nil {
			_ = exit(fmt.Errorf("panic in guarded scope: %v", r))
			panic(r)
		}
	}()
	bodyErr := body(octx)
	exitErr := exit(bodyErr)
	switch {
	case bodyErr != nil && exitErr != nil:
		return errors.Join(bodyErr, exitErr)
	case exitErr != nil:
		return exitErr
	default:
		return bodyErr
	}
}
