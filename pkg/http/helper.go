package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/validation"
)

// DecodeJSON reads a single JSON document into dst. Unknown fields are
// tolerated so that clients can send extra keys such as read-only aggregates.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("Request body is required")
		case errors.As(err, &maxErr):
			return apperrors.New(apperrors.CodeBadRequest, "Request body too large", http.StatusRequestEntityTooLarge)
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return apperrors.ValidationFields("Request validation failed", validation.ValidationErrors{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type.Kind())),
			}})
		default:
			return apperrors.Wrap(err, apperrors.CodeInvalidInput, "Invalid request body", http.StatusBadRequest)
		}
	}
	return nil
}

func jsonKind(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "whole number"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	}
	return "object"
}

// ExtractPage reads page and limit query parameters. Zero values are left
// for the caller to normalize.
func ExtractPage(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	page := 0
	if s := query.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	return page, limit, nil
}

func QueryFloat(r *http.Request, key string) (*float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", key, s))
	}
	return &v, nil
}

func QueryInt(r *http.Request, key string) (*int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", key, s))
	}
	return &v, nil
}

func QueryBool(r *http.Request, key string) (*bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", key, s))
	}
	return &v, nil
}
