package history

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/kingbayo/internal/ticket"
)

func batch(tag string, n int) []ticket.Ticket {
	out := make([]ticket.Ticket, n)
	for i := range out {
		out[i] = ticket.Ticket{ID: fmt.Sprintf("%s-%d", tag, i), Strategy: "The Iron Bank"}
	}
	return out
}

func ids(l Log) []string {
	var out []string
	for _, t := range l.Entries() {
		out = append(out, t.ID)
	}
	return out
}

func TestRecordPrependsNewestBatch(t *testing.T) {
	var l Log
	l = l.Record(batch("a", 3))
	l = l.Record(batch("b", 3))
	l = l.Record(batch("c", 3))

	if l.Len() != 9 {
		t.Fatalf("len=%d want 9", l.Len())
	}
	want := "c-0 c-1 c-2 b-0 b-1 b-2 a-0 a-1 a-2"
	if got := strings.Join(ids(l), " "); got != want {
		t.Fatalf("order=%q want %q", got, want)
	}
}

func TestRecordTruncatesToCapacity(t *testing.T) {
	var l Log
	for i := 0; i < 30; i++ {
		l = l.Record(batch(fmt.Sprint(i), 3))
		if l.Len() > Capacity {
			t.Fatalf("len=%d after %d batches", l.Len(), i+1)
		}
	}
	if l.Len() != Capacity {
		t.Fatalf("len=%d want %d", l.Len(), Capacity)
	}
	got := ids(l)
	if got[0] != "29-0" || got[Capacity-1] != "13-1" {
		t.Fatalf("head=%s tail=%s", got[0], got[Capacity-1])
	}
}

func TestRecordDoesNotMutatePrevious(t *testing.T) {
	prev := Log{}.Record(batch("a", 3))
	next := prev.Record(batch("b", 3))
	if prev.Len() != 3 || next.Len() != 6 {
		t.Fatalf("prev=%d next=%d", prev.Len(), next.Len())
	}
	if ids(prev)[0] != "a-0" {
		t.Fatalf("previous log changed: %v", ids(prev))
	}
}

func TestClear(t *testing.T) {
	l := Log{}.Record(batch("a", 3)).Clear()
	if l.Len() != 0 || len(l.Entries()) != 0 {
		t.Fatalf("len=%d after clear", l.Len())
	}
}

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2025, 3, 14, 18, 30, 5, 0, time.UTC)
	l := Log{}.Record([]ticket.Ticket{
		{
			Strategy:   "The Bookie Basher",
			TotalOdds:  8.5,
			Confidence: 0.726,
			Matches:    make([]ticket.Match, 7),
			Reasoning:  `Value in "draw no bet" markets, low variance`,
			Timestamp:  ts,
		},
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, l, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "Strategy,Total Odds,Confidence,Matches,Reasoning,Timestamp\n" +
		`"The Bookie Basher","8.50","73%","7","Value in ""draw no bet"" markets, low variance","2025-03-14 18:30:05"` + "\n"
	if buf.String() != want {
		t.Fatalf("csv=\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSVNonFiniteNumbers(t *testing.T) {
	l := Log{}.Record([]ticket.Ticket{{Strategy: "X", TotalOdds: math.Inf(1), Confidence: math.NaN()}})
	var buf bytes.Buffer
	if err := WriteCSV(&buf, l, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(buf.String(), `"+Inf","NaN%"`) {
		t.Fatalf("csv=%q", buf.String())
	}
}

func TestWriteCSVEmptyLog(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Log{}, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestExportFilename(t *testing.T) {
	now := time.UnixMilli(1710441005123)
	if got := ExportFilename(now); got != "kingbayo-history-1710441005123.csv" {
		t.Fatalf("filename=%s", got)
	}
}
