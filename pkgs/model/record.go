package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotAvailable is displayed for every absent or null field.
const NotAvailable = "N/A"

////////////////////////////////////////////////////////////////////////////////
// Record
////////////////////////////////////////////////////////////////////////////////

// Record is one document of the tweets collection, or a projected/grouped
// slice of it. Field order is the order the store returned.
type Record bson.D

// Field is a single key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Get looks up a dotted path such as "user.username".
// It reports false when any segment is missing or the value is null.
func (r Record) Get(path string) (any, bool) {
	var cur any = bson.D(r)
	for _, key := range strings.Split(path, ".") {
		next, ok := lookup(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// GetOr returns the value at path or def when absent.
func (r Record) GetOr(path string, def any) any {
	if v, ok := r.Get(path); ok {
		return v
	}
	return def
}

// Display formats the value at path, or NotAvailable.
func (r Record) Display(path string) string {
	v, ok := r.Get(path)
	if !ok {
		return NotAvailable
	}
	return FormatValue(v)
}

// Quoted renders the value at path with explicit string quoting.
func (r Record) Quoted(path string) string {
	v, ok := r.Get(path)
	if !ok {
		return NotAvailable
	}
	return QuoteValue(v)
}

// Sub returns the embedded document at path.
func (r Record) Sub(path string) (Record, bool) {
	v, ok := r.Get(path)
	if !ok {
		return nil, false
	}
	switch doc := v.(type) {
	case bson.D:
		return Record(doc), true
	case Record:
		return doc, true
	case bson.M:
		return fromMap(doc), true
	case map[string]any:
		return fromMap(doc), true
	}
	return nil, false
}

// Fields returns the top-level pairs in stored order.
func (r Record) Fields() []Field {
	res := make([]Field, 0, len(r))
	for _, e := range r {
		res = append(res, Field{Key: e.Key, Value: e.Value})
	}
	return res
}

func lookup(doc any, key string) (any, bool) {
	switch d := doc.(type) {
	case bson.D:
		for _, e := range d {
			if e.Key == key {
				return e.Value, true
			}
		}
	case Record:
		return lookup(bson.D(d), key)
	case bson.M:
		v, ok := d[key]
		return v, ok
	case map[string]any:
		v, ok := d[key]
		return v, ok
	}
	return nil, false
}

// fromMap copies m into a Record. Key order follows map iteration.
func fromMap(m map[string]any) Record {
	res := make(Record, 0, len(m))
	for k, v := range m {
		res = append(res, bson.E{Key: k, Value: v})
	}
	return res
}

////////////////////////////////////////////////////////////////////////////////
// Value formatting
////////////////////////////////////////////////////////////////////////////////

// FormatValue renders a decoded BSON value for the console.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NotAvailable
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case primitive.Null, primitive.Undefined:
		return NotAvailable
	case bson.A:
		return formatArray(val)
	case []any:
		return formatArray(val)
	case bson.D:
		return formatDoc(val)
	case Record:
		return formatDoc(bson.D(val))
	case bson.M:
		return formatDoc(bson.D(fromMap(val)))
	case map[string]any:
		return formatDoc(bson.D(fromMap(val)))
	}
	return fmt.Sprint(v)
}

// QuoteValue is FormatValue with strings in quoted, escaped form.
func QuoteValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return FormatValue(v)
}

func formatArray(arr []any) string {
	parts := make([]string, 0, len(arr))
	for _, item := range arr {
		parts = append(parts, QuoteValue(item))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatDoc(doc bson.D) string {
	parts := make([]string, 0, len(doc))
	for _, e := range doc {
		parts = append(parts, e.Key+": "+QuoteValue(e.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
