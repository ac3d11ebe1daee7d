package history

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{"Strategy", "Total Odds", "Confidence", "Matches", "Reasoning", "Timestamp"}

// TimestampLayout formats the Timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// WriteCSV writes one row per ticket in log order. Every data cell is quoted
// (encoding/csv only quotes when needed). loc sets the timestamp zone; nil
// means UTC.
func WriteCSV(w io.Writer, l Log, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(csvHeader, ",") + "\n"); err != nil {
		return err
	}
	for _, t := range l.entries {
		row := []string{
			t.Strategy,
			fixed(t.TotalOdds, 0, 2),
			fixed(t.Confidence, 2, 0) + "%",
			strconv.Itoa(len(t.Matches)),
			t.Reasoning,
			t.Timestamp.In(loc).Format(TimestampLayout),
		}
		for i, cell := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(cell)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// fixed renders f scaled by 10^shift at the given places. Non-finite values
// cannot go through decimal and are written as Go formats them.
func fixed(f float64, shift int32, places int32) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return decimal.NewFromFloat(f).Shift(shift).StringFixed(places)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFilename names an export after the instant it was produced.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("kingbayo-history-%d.csv", now.UnixMilli())
}
