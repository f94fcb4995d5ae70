package ioload

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/sparkify/sparkdb/internal/iogateway"
	"github.com/sparkify/sparkdb/pkg/db"
	"github.com/sparkify/sparkdb/pkg/schema"
)

// Stats counts results of a load run.
type Stats struct {
	// Files is the number of fully processed files.
	Files int

	// Committed is the number of written rows per table.
	Committed map[string]int

	// Skipped is the number of rows per table rejected as duplicates.
	Skipped map[string]int

	// Unresolved is the number of songplays rejected because their song
	// was not found.
	Unresolved int
}

func newStats() *Stats {
	return &Stats{
		Committed: make(map[string]int),
		Skipped:   make(map[string]int),
	}
}

func (s *Stats) add(o iogateway.Outcome) {
	switch o.Status {
	case iogateway.Committed:
		s.Committed[o.Table]++
	case iogateway.Skipped:
		if o.Violation != nil && o.Violation.Kind == db.NotNullViolation {
			s.Unresolved++
			return
		}
		s.Skipped[o.Table]++
	}
}

func (s *Stats) TotalCommitted() int {
	return sum(s.Committed)
}

func (s *Stats) TotalSkipped() int {
	return sum(s.Skipped)
}

// Summary is a user-facing report of the run.
func (s *Stats) Summary(dur time.Duration) string {
	var sb strings.Builder
	sb.WriteString("Load complete\n")
	fmt.Fprintf(&sb, "Files processed: %s\n", humanize.Comma(int64(s.Files)))
	for _, m := range schema.AllModels() {
		t := m.TableName()
		fmt.Fprintf(&sb, "  %-10s committed %s, duplicates skipped %s\n",
			t,
			humanize.Comma(int64(s.Committed[t])),
			humanize.Comma(int64(s.Skipped[t])),
		)
	}
	fmt.Fprintf(&sb, "Songplays without known song: %s\n",
		humanize.Comma(int64(s.Unresolved)))
	fmt.Fprintf(&sb, "Elapsed time: <em>%s</em>", gnfmt.TimeString(dur.Seconds()))
	return sb.String()
}

func sum(m map[string]int) int {
	var res int
	for _, v := range m {
		res += v
	}
	return res
}
