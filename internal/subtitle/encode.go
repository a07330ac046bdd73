package subtitle

import (
	"bufio"
	"io"
	"strconv"
)

// Encode writes records back in the blank-line delimited block layout,
// restoring the comma millisecond separator. Records without an id are
// numbered by position.
func Encode(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		id, ok := rec.ID()
		if !ok {
			id = i + 1
		}
		bw.WriteString(strconv.Itoa(id))
		bw.WriteByte('\n')
		bw.WriteString(denormalizeTimestamp(rec.begin))
		bw.WriteString(" --> ")
		bw.WriteString(denormalizeTimestamp(rec.end))
		bw.WriteByte('\n')
		for _, line := range rec.lines {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
