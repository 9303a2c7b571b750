package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathString binds a required simple-style string path parameter.
func pathString(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return v, err
}

// pathUUID binds a required simple-style UUID path parameter.
func pathUUID(r *http.Request, name string) (openapi_types.UUID, error) {
	var v openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return v, err
}

// queryInt binds an optional integer query parameter; nil when absent.
func queryInt(r *http.Request, name string) (*int, error) {
	var v *int
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v)
	return v, err
}

// queryString binds an optional string query parameter; nil when absent.
func queryString(r *http.Request, name string) (*string, error) {
	var v *string
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v)
	return v, err
}

// queryTime binds an optional RFC 3339 query parameter; nil when absent.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	var v *time.Time
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v)
	return v, err
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
