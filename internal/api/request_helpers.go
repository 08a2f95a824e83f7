package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/taskfilter"
)

// DecodeAndValidate decodes the request body into dst and validates it with
// the given validator. On failure it writes an error response and returns
// false; handlers should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders a validator error into a client-facing message
// naming the first failing field.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "Invalid request"
	}
	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// getPathUUID extracts and parses a UUID path parameter. On failure it writes
// a 400 response and returns false.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseTaskFilter binds filter query parameters into a taskfilter.Filter.
// Unparsable dates, UUIDs, and numbers are ignored, matching the filter's
// best-effort contract; sortDescending defaults to true when absent.
func parseTaskFilter(r *http.Request) taskfilter.Filter {
	q := r.URL.Query()
	filter := taskfilter.Filter{
		Status:         q.Get("status"),
		Priority:       q.Get("priority"),
		AssignedTo:     q.Get("assignedTo"),
		CreatedBy:      q.Get("createdBy"),
		SortBy:         q.Get("sortBy"),
		SortDescending: true,
	}

	if v := q.Get("sortDescending"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.SortDescending = b
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.PageSize = n
		}
	}
	if v := q.Get("dueDateFrom"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueDateFrom = &t
		}
	}
	if v := q.Get("dueDateTo"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueDateTo = &t
		}
	}
	if v := q.Get("tags"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	if v := q.Get("categoryId"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CategoryID = &id
		}
	}
	return filter
}
