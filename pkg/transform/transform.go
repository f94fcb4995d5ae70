// Package transform maps raw source records to the rows of the star
// schema. It is pure except for SongplayRows, which asks a Resolver for
// song and artist ids.
package transform

import (
	"context"
	"time"

	"github.com/sparkify/sparkdb/pkg/record"
	"github.com/sparkify/sparkdb/pkg/schema"
)

// SongRow projects a song document to a songs row.
func SongRow(s record.Song) schema.Song {
	return schema.Song{
		SongID:   s.SongID,
		Title:    s.Title,
		ArtistID: s.ArtistID,
		Year:     s.Year,
		Duration: s.Duration,
	}
}

// ArtistRow projects a song document to an artists row.
func ArtistRow(s record.Song) schema.Artist {
	return schema.Artist{
		ArtistID:  s.ArtistID,
		Name:      s.ArtistName,
		Location:  s.ArtistLocation,
		Latitude:  s.ArtistLatitude,
		Longitude: s.ArtistLongitude,
	}
}

// NextSongs keeps only playback events, preserving their order.
func NextSongs(evs []record.Event) []record.Event {
	var res []record.Event
	for _, v := range evs {
		if v.IsNextSong() {
			res = append(res, v)
		}
	}
	return res
}

// StartTime converts the epoch milliseconds of an event to a UTC time.
func StartTime(ev record.Event) time.Time {
	return time.UnixMilli(ev.TS).UTC()
}

// TimeRow decomposes a timestamp into a time row.
func TimeRow(ts time.Time) schema.Time {
	_, week := ts.ISOWeek()
	return schema.Time{
		StartTime: ts,
		Hour:      ts.Hour(),
		Day:       ts.Day(),
		Week:      week,
		Month:     int(ts.Month()),
		Year:      ts.Year(),
		// time.Weekday starts with Sunday
		Weekday: (int(ts.Weekday()) + 6) % 7,
	}
}

// TimeRows returns one time row per event. Repeated timestamps give
// repeated rows.
func TimeRows(evs []record.Event) []schema.Time {
	res := make([]schema.Time, 0, len(evs))
	for _, v := range evs {
		res = append(res, TimeRow(StartTime(v)))
	}
	return res
}

// UserRows returns users of the events. Each distinct combination of
// user_id, first name, last name, gender and level appears once, in order
// of the first occurrence.
func UserRows(evs []record.Event) []schema.User {
	seen := make(map[schema.User]struct{})
	var res []schema.User
	for _, v := range evs {
		u := schema.User{
			UserID:    string(v.UserID),
			FirstName: v.FirstName,
			LastName:  v.LastName,
			Gender:    v.Gender,
			Level:     v.Level,
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		res = append(res, u)
	}
	return res
}

// SongRef holds ids of a song and its artist. Both are nil when the
// song could not be identified.
type SongRef struct {
	SongID   *string
	ArtistID *string
}

// Resolved is true when the reference points to a known song.
func (r SongRef) Resolved() bool {
	return r.SongID != nil
}

// Resolver finds the song and artist of a playback.
type Resolver interface {
	// Resolve returns ids of the only song that matches title, artist
	// name and duration exactly. If there is no such song, or there are
	// several, it returns an empty SongRef.
	Resolve(
		ctx context.Context,
		title, artist string,
		duration float64,
	) (SongRef, error)
}

// SongplayRow builds a songplays row from a playback event.
func SongplayRow(id string, ev record.Event, ref SongRef) schema.Songplay {
	return schema.Songplay{
		SongplayID: id,
		StartTime:  StartTime(ev),
		UserID:     string(ev.UserID),
		Level:      ev.Level,
		SongID:     ref.SongID,
		ArtistID:   ref.ArtistID,
		SessionID:  ev.SessionID,
		Location:   ev.Location,
		UserAgent:  ev.UserAgent,
	}
}

// SongplayRows builds one songplays row per event, including rows whose
// song could not be resolved. Every row gets a fresh id from newID.
func SongplayRows(
	ctx context.Context,
	evs []record.Event,
	res Resolver,
	newID func() string,
) ([]schema.Songplay, error) {
	rows := make([]schema.Songplay, 0, len(evs))
	for _, v := range evs {
		ref, err := res.Resolve(ctx, v.Song, v.Artist, v.Length)
		if err != nil {
			return nil, err
		}
		rows = append(rows, SongplayRow(newID(), v, ref))
	}
	return rows, nil
}
