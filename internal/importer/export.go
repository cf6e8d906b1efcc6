package importer

import (
	"bufio"
	"io"

	"github.com/julianstephens/riji/internal/models"
)

// WriteText writes entries in the format Parse reads: the title on its own
// line, the content, then a blank line. Titles that do not start with a
// date will not survive a re-import.
func WriteText(w io.Writer, entries []models.Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(e.Title + "\n" + e.Content + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
