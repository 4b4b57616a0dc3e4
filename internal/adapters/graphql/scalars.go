package graphql

import (
	"strconv"
	"strings"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

// DateTime travels as RFC 3339 text and is always rendered in UTC.
var DateTime = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "DateTime",
	Description: "RFC 3339 timestamp",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case time.Time:
			return v.UTC().Format(time.RFC3339Nano)
		case *time.Time:
			if v == nil {
				return nil
			}
			return v.UTC().Format(time.RFC3339Nano)
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		return parseTime(s)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if v, ok := valueAST.(*ast.StringValue); ok {
			return parseTime(v.Value)
		}
		return nil
	},
})

func parseTime(s string) interface{} {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return t.UTC()
}

// JSON passes arbitrary values through untouched. Literals are converted to
// plain Go maps, slices and scalars.
var JSON = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "Opaque JSON value",
	Serialize:   func(value interface{}) interface{} { return value },
	ParseValue:  func(value interface{}) interface{} { return value },
	ParseLiteral: func(valueAST ast.Value) interface{} {
		return literalValue(valueAST)
	},
})

func literalValue(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.IntValue:
		if n, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return n
		}
		return nil
	case *ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
		return nil
	case *ast.ObjectValue:
		obj := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			obj[field.Name.Value] = literalValue(field.Value)
		}
		return obj
	case *ast.ListValue:
		list := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			list = append(list, literalValue(item))
		}
		return list
	}
	return nil
}

func enumOf[T ~string](name string, values []T) *graphql.Enum {
	cfg := graphql.EnumValueConfigMap{}
	for _, v := range values {
		cfg[string(v)] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: cfg})
}

var (
	StatusEnum    = enumOf("Status", domain.Statuses)
	PriorityEnum  = enumOf("Priority", domain.Priorities)
	EventTypeEnum = enumOf("EventType", domain.EventTypes)
	GenderEnum    = enumOf("Gender", domain.Genders)
)

// EntityKindEnum uses upper-case names (PERSON, STATUS_UPDATE) for the
// lower-case kinds of the relation registry.
var EntityKindEnum = func() *graphql.Enum {
	cfg := graphql.EnumValueConfigMap{}
	for _, k := range domain.Kinds {
		cfg[kindName(k)] = &graphql.EnumValueConfig{Value: k}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: "EntityKind", Values: cfg})
}()

func kindName(k domain.Kind) string { return strings.ToUpper(string(k)) }
