package shape

import "golang.org/x/text/unicode/bidi"

// dirSegment is a run of runes with a single resolved direction,
// half-open [start, end) in rune indices, in logical order.
type dirSegment struct {
	start, end int
	rtl        bool
}

// segmentByDirection splits a run into direction segments using the
// Unicode bidi algorithm. Runs without any RTL-capable characters take
// the fast path and shape as one LTR segment.
func segmentByDirection(runes []rune) []dirSegment {
	needsBidi := false
	for _, r := range runes {
		// First RTL block (Hebrew) starts at U+0590; everything below
		// is strongly LTR or neutral.
		if r >= 0x0590 {
			needsBidi = true
			break
		}
	}
	if !needsBidi {
		return []dirSegment{{start: 0, end: len(runes)}}
	}

	p := bidi.Paragraph{}
	_, _ = p.SetString(string(runes))
	ordering, err := p.Order()
	if err != nil {
		return []dirSegment{{start: 0, end: len(runes)}}
	}

	// Flatten run directions back onto rune positions; Ordering yields
	// runs in visual order but shaping consumes logical order.
	rtl := make([]bool, len(runes))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		// Pos returns rune indices, start and end inclusive.
		start, end := run.Pos()
		isRTL := run.Direction() == bidi.RightToLeft
		for j := start; j <= end && j < len(rtl); j++ {
			rtl[j] = isRTL
		}
	}

	var segs []dirSegment
	start := 0
	for i := 1; i <= len(rtl); i++ {
		if i == len(rtl) || rtl[i] != rtl[start] {
			segs = append(segs, dirSegment{start: start, end: i, rtl: rtl[start]})
			start = i
		}
	}
	return segs
}
