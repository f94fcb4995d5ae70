// Package sparkdb loads Sparkify song metadata and user activity logs
// into a small star schema (songs, artists, users, time, songplays).
package sparkdb

var (
	// Version of the sparkdb application.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
