package transform_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sparkify/sparkdb/pkg/record"
	"github.com/sparkify/sparkdb/pkg/schema"
	"github.com/sparkify/sparkdb/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	songs map[string]transform.SongRef
	calls int
	err   error
}

func (f *fakeResolver) Resolve(
	_ context.Context,
	title, artist string,
	duration float64,
) (transform.SongRef, error) {
	f.calls++
	if f.err != nil {
		return transform.SongRef{}, f.err
	}
	key := fmt.Sprintf("%s|%s|%v", title, artist, duration)
	return f.songs[key], nil
}

func ptr[T any](v T) *T { return &v }

func nextSong() record.Event {
	return record.Event{
		Page:      "NextSong",
		TS:        1600000000000,
		UserID:    "7",
		FirstName: "A",
		LastName:  "B",
		Gender:    "F",
		Level:     "free",
		Song:      "T",
		Artist:    "N",
		Length:    200.5,
		SessionID: 5,
		Location:  "X",
		UserAgent: "UA",
	}
}

func TestSongAndArtistRows(t *testing.T) {
	s := record.Song{
		SongID:          "S1",
		Title:           "T",
		ArtistID:        "A1",
		Year:            2000,
		Duration:        200.5,
		ArtistName:      "N",
		ArtistLocation:  ptr("L"),
		ArtistLatitude:  ptr(1.0),
		ArtistLongitude: ptr(2.0),
	}

	song := transform.SongRow(s)
	assert.Equal(t, schema.Song{
		SongID: "S1", Title: "T", ArtistID: "A1", Year: 2000, Duration: 200.5,
	}, song)

	artist := transform.ArtistRow(s)
	assert.Equal(t, []any{"A1", "N", "L", 1.0, 2.0}, schema.Values(artist))
}

func TestNextSongs(t *testing.T) {
	login := nextSong()
	login.Page = "Login"

	evs := transform.NextSongs([]record.Event{nextSong(), login})
	require.Len(t, evs, 1)
	assert.Equal(t, "NextSong", evs[0].Page)

	assert.Empty(t, transform.NextSongs([]record.Event{login}))
}

func TestTimeRow(t *testing.T) {
	tests := []struct {
		msg string
		ts  time.Time
		exp schema.Time
	}{
		{
			msg: "sunday is the last day of the week",
			ts:  time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC),
			exp: schema.Time{Hour: 12, Day: 13, Week: 37, Month: 9,
				Year: 2020, Weekday: 6},
		},
		{
			msg: "monday is zero",
			ts:  time.Date(2018, 11, 5, 3, 0, 0, 0, time.UTC),
			exp: schema.Time{Hour: 3, Day: 5, Week: 45, Month: 11,
				Year: 2018, Weekday: 0},
		},
		{
			msg: "iso week of early january belongs to previous year",
			ts:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			exp: schema.Time{Hour: 0, Day: 1, Week: 53, Month: 1,
				Year: 2021, Weekday: 4},
		},
	}

	for _, v := range tests {
		res := transform.TimeRow(v.ts)
		v.exp.StartTime = v.ts
		assert.Equal(t, v.exp, res, v.msg)
	}
}

func TestTimeRows_NotDeduplicated(t *testing.T) {
	evs := []record.Event{nextSong(), nextSong()}
	rows := transform.TimeRows(evs)
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0], rows[1])
	assert.Equal(t, time.UTC, rows[0].StartTime.Location())
	assert.Equal(t, int64(1600000000000), rows[0].StartTime.UnixMilli())
}

func TestUserRows(t *testing.T) {
	paid := nextSong()
	paid.Level = "paid"
	other := nextSong()
	other.UserID = "8"

	users := transform.UserRows(
		[]record.Event{nextSong(), nextSong(), paid, other, nextSong()},
	)
	require.Len(t, users, 3)
	assert.Equal(t, schema.User{UserID: "7", FirstName: "A", LastName: "B",
		Gender: "F", Level: "free"}, users[0])
	assert.Equal(t, "paid", users[1].Level)
	assert.Equal(t, "8", users[2].UserID)
}

func TestSongplayRows(t *testing.T) {
	ctx := context.Background()
	res := &fakeResolver{songs: map[string]transform.SongRef{
		"T|N|200.5": {SongID: ptr("S1"), ArtistID: ptr("A1")},
	}}
	unknown := nextSong()
	unknown.Song = "Other"

	var n int
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	rows, err := transform.SongplayRows(ctx,
		[]record.Event{nextSong(), unknown}, res, newID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, res.calls)

	sp := rows[0]
	assert.Equal(t, "id-1", sp.SongplayID)
	assert.Equal(t, int64(1600000000000), sp.StartTime.UnixMilli())
	assert.Equal(t, "7", sp.UserID)
	assert.Equal(t, "free", sp.Level)
	require.NotNil(t, sp.SongID)
	assert.Equal(t, "S1", *sp.SongID)
	require.NotNil(t, sp.ArtistID)
	assert.Equal(t, "A1", *sp.ArtistID)
	assert.Equal(t, 5, sp.SessionID)
	assert.Equal(t, "X", sp.Location)
	assert.Equal(t, "UA", sp.UserAgent)

	assert.Equal(t, "id-2", rows[1].SongplayID)
	assert.Nil(t, rows[1].SongID)
	assert.Nil(t, rows[1].ArtistID)
}

func TestSongplayRows_ResolverError(t *testing.T) {
	res := &fakeResolver{err: errors.New("connection lost")}
	rows, err := transform.SongplayRows(context.Background(),
		[]record.Event{nextSong()}, res, func() string { return "id" })
	require.Error(t, err)
	assert.Nil(t, rows)
}

func TestSongRef_Resolved(t *testing.T) {
	assert.False(t, transform.SongRef{}.Resolved())
	assert.True(t, transform.SongRef{SongID: ptr("S1")}.Resolved())
}
