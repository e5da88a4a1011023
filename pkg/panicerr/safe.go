package panicerr

import (
	"github.com/sourcegraph/conc/panics"
)

// Safe wraps a function that returns an error, catching any panics and returning them as an error.
func Safe(fn func() error) func() error {
	return func() error {
		var (
			catcher panics.Catcher
			err     error
		)
		catcher.Try(func() {
			err = fn()
		})
		if err != nil {
			return err
		}
		return catcher.Recovered().AsError()
	}
}

// SafeValue is Safe for functions that also produce a value. The zero value is
// returned when fn panics.
func SafeValue[T any](fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		var v T
		err := Safe(func() error {
			var err error
			v, err = fn()
			return err
		})()
		if err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}
