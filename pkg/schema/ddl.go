package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string, constraints ...string) string {
	t := modelType(model)

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	for _, v := range constraints {
		columns = append(columns, "    "+v)
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

func modelType(model any) reflect.Type {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// Song DDL methods
func (s Song) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s Song) TableName() string {
	return "songs"
}

// Artist DDL methods
func (a Artist) TableDDL() string {
	return generateDDL(a, a.TableName())
}

func (a Artist) TableName() string {
	return "artists"
}

// User DDL methods
func (u User) TableDDL() string {
	return generateDDL(u, u.TableName())
}

func (u User) TableName() string {
	return "users"
}

// Time DDL methods
func (t Time) TableDDL() string {
	return generateDDL(t, t.TableName())
}

func (t Time) TableName() string {
	return "time"
}

// Songplay DDL methods
func (sp Songplay) TableDDL() string {
	return generateDDL(sp, sp.TableName(),
		"UNIQUE (songplay_id, user_id, song_id, artist_id, session_id)",
	)
}

func (sp Songplay) TableName() string {
	return "songplays"
}
