package storage

import (
	"scorekeeper/internal/models"
	"strings"
	"time"
)

type Operator string

const (
	OpEqual   Operator = "=="
	OpGreater Operator = ">"
	OpLess    Operator = "<"
)

type Filter struct {
	Field string
	Op    Operator
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

func After(field string, t time.Time) Filter {
	return Filter{Field: field, Op: OpGreater, Value: t}
}

func Before(field string, t time.Time) Filter {
	return Filter{Field: field, Op: OpLess, Value: t}
}

// Matches evaluates filters in process, for stores without a query engine.
func Matches(doc models.Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := doc.Fields[f.Field]
		if !ok {
			return false
		}
		c, comparable := compare(v, f.Value)
		if !comparable {
			return false
		}
		switch f.Op {
		case OpEqual:
			if c != 0 {
				return false
			}
		case OpGreater:
			if c <= 0 {
				return false
			}
		case OpLess:
			if c >= 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compare orders a stored value against a filter value of the filter's type.
func compare(stored, want any) (int, bool) {
	switch w := want.(type) {
	case time.Time:
		t, ok := models.Time(stored)
		if !ok {
			return 0, false
		}
		return t.Compare(w), true
	case string:
		s, ok := stored.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(s, w), true
	case bool:
		b, ok := stored.(bool)
		if !ok || b != w {
			return 1, ok
		}
		return 0, true
	case float64, float32, int, int64, int32:
		a, b := models.Float(stored), models.Float(w)
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}
