package pool

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatStats renders a Stats snapshot as a human-readable report, with
// grouped digits for the byte counters.
func FormatStats(s Stats) string {
	pr := message.NewPrinter(language.English)
	var b strings.Builder

	pr.Fprintf(&b, "Pool: %d bytes capacity, %d used, %d free (largest free %d)\n",
		s.Capacity, s.UsedBytes, s.FreeBytes, s.LargestFree)
	pr.Fprintf(&b, "Blocks: %d total, %d free\n", s.Blocks, s.FreeBlocks)
	pr.Fprintf(&b, "Calls: %d alloc (%d failed), %d free, %d resize\n",
		s.AllocCalls, s.FailedAllocs, s.FreeCalls, s.ResizeCalls)
	pr.Fprintf(&b, "Ledger ops: %d splits, %d forward merges, %d backward merges\n",
		s.SplitCount, s.CoalesceForward, s.CoalesceBackward)
	pr.Fprintf(&b, "Traffic: %d bytes granted, %d bytes released\n",
		s.BytesAllocated, s.BytesFreed)
	return b.String()
}
