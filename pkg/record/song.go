package record

// Song is the content of one song metadata file. Each file describes one
// song together with the artist who performs it.
type Song struct {
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	ArtistID        string   `json:"artist_id"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// songFields must all be present in a song document. Their values may be
// null where the target column allows it.
var songFields = []string{
	"song_id",
	"title",
	"artist_id",
	"year",
	"duration",
	"artist_name",
	"artist_location",
	"artist_latitude",
	"artist_longitude",
}

// ParseSong decodes a song metadata document.
func ParseSong(data []byte) (Song, error) {
	var res Song

	var keys map[string]any
	if err := enc.Decode(data, &keys); err != nil {
		return res, malformed("song document is not a JSON object: %v", err)
	}
	for _, f := range songFields {
		if _, ok := keys[f]; !ok {
			return res, malformed("song document misses field %q", f)
		}
	}

	if err := enc.Decode(data, &res); err != nil {
		return res, malformed("cannot decode song document: %v", err)
	}

	if res.SongID == "" {
		return res, malformed("song document has empty song_id")
	}
	if res.ArtistID == "" {
		return res, malformed("song document has empty artist_id")
	}
	return res, nil
}
