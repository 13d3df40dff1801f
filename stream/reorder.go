package stream

import (
	"time"

	"gocv.io/x/gocv"
)

// frameResult carries one composited frame through the parallel path
type frameResult struct {
	seq      uint64
	img      gocv.Mat
	detected bool
	err      error
	readAt   time.Time
}

// reorderBuffer resequences frames completed out of order by the worker
// pool so the sink always receives them in capture order.  Not safe for
// concurrent use; the driver's collector is the only caller.
type reorderBuffer struct {
	next    uint64
	pending map[uint64]frameResult
}

func newReorderBuffer() *reorderBuffer {
	return &reorderBuffer{
		pending: make(map[uint64]frameResult),
	}
}

// add accepts one completed frame and returns the run of frames that
// are now ready to emit, in capture order.  The returned slice is empty
// while the next expected frame is still in flight.
func (b *reorderBuffer) add(r frameResult) []frameResult {

	b.pending[r.seq] = r

	var ready []frameResult

	for {
		next, ok := b.pending[b.next]

		if !ok {
			break
		}

		delete(b.pending, b.next)
		ready = append(ready, next)
		b.next++
	}

	return ready
}

// flush returns all frames still held, in no particular order.  Used on
// shutdown so their buffers can be released.
func (b *reorderBuffer) flush() []frameResult {

	out := make([]frameResult, 0, len(b.pending))

	for _, r := range b.pending {
		out = append(out, r)
	}

	b.pending = make(map[uint64]frameResult)

	return out
}
