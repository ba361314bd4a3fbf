package organizer

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"filesort/internal/console"
)

func (o *Organizer) printSummary(result *Result) {
	o.out.Blank()
	o.out.Plain("--- summary ---")
	if categories := result.SortedCategories(); len(categories) > 0 {
		rows := make([][]string, 0, len(categories))
		for _, category := range categories {
			rows = append(rows, []string{category, strconv.Itoa(result.Counts[category])})
		}
		o.out.Block(console.RenderTable(
			[]string{"Category", "Files"},
			rows,
			[]console.Alignment{console.AlignLeft, console.AlignRight},
		))
	}
	o.out.Plain("Total files scanned: %d", result.Scanned)
	o.out.Plain("Skipped (failed or directories): %d", result.Skipped)
	if result.BytesMoved > 0 {
		o.out.Plain("Total moved: %s", humanize.Bytes(uint64(result.BytesMoved)))
	}
}
