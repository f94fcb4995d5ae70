// Package schema provides the row models of the Sparkify star schema.
// Songplays is the fact table; songs, artists, users and time are the
// dimension tables.
package schema

import (
	"time"
)

// Model is a row of one of the schema tables.
type Model interface {
	// TableName returns the table the row belongs to.
	TableName() string

	// TableDDL returns the CREATE TABLE statement for the table.
	TableDDL() string
}

// Song is a row of the songs dimension table.
type Song struct {
	SongID   string  `db:"song_id" ddl:"TEXT PRIMARY KEY"`
	Title    string  `db:"title" ddl:"TEXT"`
	ArtistID string  `db:"artist_id" ddl:"TEXT"`
	Year     int     `db:"year" ddl:"INTEGER"`
	Duration float64 `db:"duration" ddl:"DOUBLE PRECISION"`
}

// Artist is a row of the artists dimension table.
type Artist struct {
	ArtistID  string   `db:"artist_id" ddl:"TEXT PRIMARY KEY"`
	Name      string   `db:"name" ddl:"TEXT"`
	Location  *string  `db:"location" ddl:"TEXT"`
	Latitude  *float64 `db:"latitude" ddl:"DOUBLE PRECISION"`
	Longitude *float64 `db:"longitude" ddl:"DOUBLE PRECISION"`
}

// User is a row of the users dimension table.
type User struct {
	UserID    string `db:"user_id" ddl:"TEXT PRIMARY KEY"`
	FirstName string `db:"first_name" ddl:"TEXT"`
	LastName  string `db:"last_name" ddl:"TEXT"`
	Gender    string `db:"gender" ddl:"TEXT"`
	Level     string `db:"level" ddl:"TEXT"`
}

// Time is a row of the time dimension table. It breaks a playback
// timestamp into units. Weekday is 0 for Monday.
type Time struct {
	StartTime time.Time `db:"start_time" ddl:"TIMESTAMP WITH TIME ZONE"`
	Hour      int       `db:"hour" ddl:"INTEGER"`
	Day       int       `db:"day" ddl:"INTEGER"`
	Week      int       `db:"week" ddl:"INTEGER"`
	Month     int       `db:"month" ddl:"INTEGER"`
	Year      int       `db:"year" ddl:"INTEGER"`
	Weekday   int       `db:"weekday" ddl:"INTEGER"`
}

// Songplay is a row of the songplays fact table. SongID and ArtistID are
// nil when the played song is not known to the songs table. The table
// refuses a nil SongID.
type Songplay struct {
	SongplayID string    `db:"songplay_id" ddl:"TEXT NOT NULL"`
	StartTime  time.Time `db:"start_time" ddl:"TIMESTAMP WITH TIME ZONE"`
	UserID     string    `db:"user_id" ddl:"TEXT NOT NULL"`
	Level      string    `db:"level" ddl:"TEXT"`
	SongID     *string   `db:"song_id" ddl:"TEXT NOT NULL"`
	ArtistID   *string   `db:"artist_id" ddl:"TEXT"`
	SessionID  int       `db:"session_id" ddl:"INTEGER NOT NULL"`
	Location   string    `db:"location" ddl:"TEXT"`
	UserAgent  string    `db:"user_agent" ddl:"TEXT"`
}

// AllModels returns one zero value of every table, in creation order.
func AllModels() []Model {
	return []Model{
		Song{},
		Artist{},
		User{},
		Time{},
		Songplay{},
	}
}
