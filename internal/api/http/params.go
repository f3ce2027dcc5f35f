package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"carsharing-backend/internal/domain"

	"github.com/gorilla/mux"
)

// optionalBool reads a true/false query parameter. Absent means nil.
func optionalBool(q url.Values, name string) (*bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewInvalid(fmt.Sprintf("The value '%s' is not valid for %s.", raw, name))
	}
	return &v, nil
}

func int32Query(q url.Values, name string, def int32) (int32, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, domain.NewInvalid(fmt.Sprintf("The value '%s' is not valid for %s.", raw, name))
	}
	return int32(v), nil
}

// pathID reads a numeric route variable. The router only matches digits, so
// a parse failure means the value overflowed int32.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, domain.NewInvalid(fmt.Sprintf("The value '%s' is not valid for %s.", raw, name))
	}
	return int32(v), nil
}
