package graphql

import (
	"fmt"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

// Argument helpers. graphql-go has already coerced values to the declared
// types, so a failed assertion only happens for absent or null arguments.

func argString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func optString(args map[string]interface{}, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optInt(args map[string]interface{}, key string) *int {
	n, ok := args[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func optFloat(args map[string]interface{}, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optBool(args map[string]interface{}, key string) *bool {
	b, ok := args[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func optTime(args map[string]interface{}, key string) *time.Time {
	t, ok := args[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func optEnum[T ~string](args map[string]interface{}, key string) *T {
	v, ok := args[key].(T)
	if !ok {
		return nil
	}
	return &v
}

func argIDs(args map[string]interface{}, key string) ([]string, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, false, fmt.Errorf("%w: %s must be a list of ids", domain.ErrInvalidInput, key)
	}
	ids := make([]string, 0, len(list))
	for _, item := range list {
		id, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("%w: %s must be a list of ids", domain.ErrInvalidInput, key)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

// linksFrom maps "<relation>Ids" arguments onto relation names. Absent
// arguments are left out so the relation stays untouched.
func linksFrom(args map[string]interface{}, names map[string]string) (domain.Links, error) {
	links := domain.Links{}
	for arg, relation := range names {
		ids, present, err := argIDs(args, arg)
		if err != nil {
			return nil, err
		}
		if present {
			links[relation] = ids
		}
	}
	return links, nil
}

var incidentLinkArgs = map[string]string{
	"peopleIds":   "people",
	"vehicleIds":  "vehicles",
	"tagIds":      "tags",
	"productIds":  "products",
	"evidenceIds": "evidence",
}

var caseLinkArgs = map[string]string{
	"incidentIds": "incidents",
}
