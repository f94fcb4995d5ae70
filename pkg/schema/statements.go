package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Placeholder renders the n-th (1-based) positional parameter of a
// statement in the dialect of a store.
type Placeholder func(n int) string

// Columns returns column names of a model in declaration order.
func Columns(m Model) []string {
	t := modelType(m)
	res := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if col := t.Field(i).Tag.Get("db"); col != "" {
			res = append(res, col)
		}
	}
	return res
}

// Values returns field values of a model in the order of Columns.
// Nil pointers become untyped nil, other pointers are dereferenced.
func Values(m Model) []any {
	v := reflect.ValueOf(m)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	res := make([]any, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == "" {
			continue
		}
		f := v.Field(i)
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				res = append(res, nil)
				continue
			}
			f = f.Elem()
		}
		res = append(res, f.Interface())
	}
	return res
}

// InsertSQL returns a parameterized INSERT statement for the table of
// the model.
func InsertSQL(m Model, ph Placeholder) string {
	cols := Columns(m)
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = ph(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m.TableName(),
		strings.Join(cols, ", "),
		strings.Join(params, ", "),
	)
}

// SongLookupSQL returns a query that finds (song_id, artist_id) pairs by
// song title, artist name and song duration. It returns at most two rows,
// enough to tell a unique match from an ambiguous one.
func SongLookupSQL(ph Placeholder) string {
	return fmt.Sprintf(`SELECT songs.song_id, songs.artist_id
FROM songs
JOIN artists ON songs.artist_id = artists.artist_id
WHERE songs.title = %s AND artists.name = %s AND songs.duration = %s
LIMIT 2`, ph(1), ph(2), ph(3))
}
