package record

import (
	"bufio"
	"bytes"
	"io"
)

// PageNextSong marks an event that is an actual playback of a song.
const PageNextSong = "NextSong"

// maxLineSize limits the size of one log line.
const maxLineSize = 1 << 20

// Event is one line of an activity log.
type Event struct {
	Page      string  `json:"page"`
	TS        int64   `json:"ts"`
	UserID    ID      `json:"userId"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Gender    string  `json:"gender"`
	Level     string  `json:"level"`
	Song      string  `json:"song"`
	Artist    string  `json:"artist"`
	Length    float64 `json:"length"`
	SessionID int     `json:"sessionId"`
	Location  string  `json:"location"`
	UserAgent string  `json:"userAgent"`
}

// IsNextSong is true when the event is a song playback.
func (e Event) IsNextSong() bool {
	return e.Page == PageNextSong
}

// ParseLog decodes a newline-delimited log. Every line must be a JSON
// object. One bad line rejects the whole log. An empty log returns no
// events.
func ParseLog(r io.Reader) ([]Event, error) {
	var res []Event

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lineNum int
	for sc.Scan() {
		lineNum++
		line := bytes.TrimSpace(sc.Bytes())

		if len(line) == 0 || line[0] != '{' {
			return nil, malformed("log line %d is not a JSON object", lineNum)
		}

		var ev Event
		if err := enc.Decode(line, &ev); err != nil {
			return nil, malformed("log line %d: %v", lineNum, err)
		}
		res = append(res, ev)
	}

	if err := sc.Err(); err != nil {
		return nil, malformed("cannot read log after line %d: %v", lineNum, err)
	}
	return res, nil
}
