package schedule

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

const (
	dateWidth     = 10
	timeWidth     = 10
	playersWidth  = 30
	divisionWidth = 10
	locationWidth = 20

	columnSeparator = " | "
)

// FormatTable renders matches as a fixed-width, pipe-delimited table for
// sharing. divisionNames maps division ids to display names; unknown ids are
// printed as-is.
func FormatTable(matches []Match, divisionNames map[string]string) string {
	rows := append([]Match(nil), matches...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].TimeSlot != rows[j].TimeSlot {
			return rows[i].TimeSlot < rows[j].TimeSlot
		}
		return rows[i].ID < rows[j].ID
	})

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeRow(buf, "Date", "Time", "Players", "Division", "Location")
	_, _ = buf.WriteString(strings.Repeat("-", dateWidth+timeWidth+playersWidth+divisionWidth+locationWidth+4*len(columnSeparator)))
	_ = buf.WriteByte('\n')

	for _, m := range rows {
		division := m.DivisionID
		if name, ok := divisionNames[m.DivisionID]; ok && name != "" {
			division = name
		}
		writeRow(buf, m.Date, m.TimeSlot, playersLabel(m), division, m.Location)
	}

	return buf.String()
}

func playersLabel(m Match) string {
	second := m.Player2Name
	if m.IsOpen() || second == "" {
		second = PendingPlaceholder
	}
	return m.Player1Name + " vs " + second
}

func writeRow(buf *bytebufferpool.ByteBuffer, date, timeSlot, players, division, location string) {
	_, _ = buf.WriteString(pad(date, dateWidth))
	_, _ = buf.WriteString(columnSeparator)
	_, _ = buf.WriteString(pad(timeSlot, timeWidth))
	_, _ = buf.WriteString(columnSeparator)
	_, _ = buf.WriteString(pad(players, playersWidth))
	_, _ = buf.WriteString(columnSeparator)
	_, _ = buf.WriteString(pad(division, divisionWidth))
	_, _ = buf.WriteString(columnSeparator)
	_, _ = buf.WriteString(pad(location, locationWidth))
	_ = buf.WriteByte('\n')
}

// pad left-pads value with spaces to width runes. Longer values are kept
// whole.
func pad(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n >= width {
		return value
	}
	return strings.Repeat(" ", width-n) + value
}
