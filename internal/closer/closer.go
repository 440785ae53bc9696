// Package closer runs release functions at scope exit.
//
// It pairs with defer: the release is skipped for nil closers or negative
// descriptors, and its error is joined into the caller's named error return.
//
//	func load(path string) (err error) {
//	    f, err := os.Open(path)
//	    if err != nil {
//	        return err
//	    }
//	    defer closer.Close(f, &err)
//	    ...
//	}
package closer

import (
	"errors"
	"io"
	"reflect"
)

// Close closes c and joins any error into *errp. A nil c (including a typed
// nil pointer) is skipped.
func Close(c io.Closer, errp *error) {
	if isNil(c) {
		return
	}
	if err := c.Close(); err != nil && errp != nil {
		*errp = errors.Join(*errp, err)
	}
}

// Func adapts a plain function to io.Closer.
type Func func() error

// Close implements io.Closer.
func (f Func) Close() error {
	if f == nil {
		return nil
	}
	return f()
}

// All closes every closer in reverse order and joins the errors.
func All(cs ...io.Closer) error {
	var err error
	for i := len(cs) - 1; i >= 0; i-- {
		Close(cs[i], &err)
	}
	return err
}

func isNil(c io.Closer) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
