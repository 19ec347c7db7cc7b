package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"

	"talentgate/assess/internal/models"
	"talentgate/assess/internal/utils"
)

type contextKey string

const validatedRequestKey contextKey = "validated_request"

// Validator is implemented by every request model that carries its own
// validation rules.
type Validator interface {
	Validate() error
}

// ValidateRequest decodes the JSON body into T, runs T's Validate method and
// stores the result in the request context. Handlers behind this middleware
// can assume the request is well formed. Decode and validation failures end
// the request with a 400 and an ErrorResponse body.
func ValidateRequest[T Validator]() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// T is typically a pointer type, so allocate the element it
			// points to rather than decoding into a nil pointer.
			var req T
			reqType := reflect.TypeOf(req)
			if reqType.Kind() == reflect.Ptr {
				req = reflect.New(reqType.Elem()).Interface().(T)
			} else {
				req = reflect.New(reqType).Interface().(T)
			}

			if err := json.NewDecoder(r.Body).Decode(req); err != nil {
				utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
					Code:    "invalid_json",
					Message: "Invalid JSON in request body",
				})
				return
			}

			if err := req.Validate(); err != nil {
				if errResp, ok := err.(*models.ErrorResponse); ok {
					utils.JSON(w, http.StatusBadRequest, *errResp)
				} else {
					utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
						Code:    "validation_error",
						Message: err.Error(),
					})
				}
				return
			}

			ctx := context.WithValue(r.Context(), validatedRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetValidatedRequest returns the request stored by ValidateRequest. Calling
// it outside a route wrapped by the middleware panics.
func GetValidatedRequest[T any](r *http.Request) T {
	return r.Context().Value(validatedRequestKey).(T)
}
