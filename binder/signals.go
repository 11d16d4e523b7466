package binder

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// BindSignals decodes the datastar signals of a request into v: the datastar
// query parameter for GET requests, the JSON body otherwise. Signals without
// a matching field are ignored, since datastar sends the whole signal store.
func BindSignals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}
