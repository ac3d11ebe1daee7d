// Package history holds the bounded, newest-first log of generated tickets.
// Log is a value: Record and Clear return a new Log and never mutate the
// receiver's backing array.
package history

import "github.com/yungbote/kingbayo/internal/ticket"

// Capacity is the maximum number of tickets a Log retains.
const Capacity = 50

type Log struct {
	entries []ticket.Ticket
}

// Record prepends batch in its given order, then truncates to Capacity.
func (l Log) Record(batch []ticket.Ticket) Log {
	n := len(batch) + len(l.entries)
	if n > Capacity {
		n = Capacity
	}
	out := make([]ticket.Ticket, 0, n)
	for _, t := range batch {
		if len(out) == n {
			break
		}
		out = append(out, t.Clone())
	}
	for _, t := range l.entries {
		if len(out) == n {
			break
		}
		out = append(out, t)
	}
	return Log{entries: out}
}

func (l Log) Clear() Log {
	return Log{}
}

func (l Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log, newest first.
func (l Log) Entries() []ticket.Ticket {
	return ticket.CloneAll(l.entries)
}
