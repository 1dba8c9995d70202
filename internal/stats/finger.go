package stats

import (
	"sort"

	"github.com/tecla-cli/tecla/internal/deadkey"
	"github.com/tecla-cli/tecla/internal/layout"
	"github.com/tecla-cli/tecla/internal/model"
)

// FingerAggregate sums character aggregates per assigned finger.
type FingerAggregate struct {
	Finger       layout.Finger
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// Accuracy returns the finger's hit rate in [0,1].
func (f FingerAggregate) Accuracy() float64 {
	total := f.Correct + f.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(f.Correct) / float64(total)
}

// AvgLatencyMs returns the mean inter-keystroke latency, 0 without samples.
func (f FingerAggregate) AvgLatencyMs() float64 {
	if f.LatencyCount == 0 {
		return 0
	}
	return float64(f.LatencySumMs) / float64(f.LatencyCount)
}

// AggregateByFinger joins character aggregates against the layout's finger
// assignment. Characters not on the layout (composed accents land here when
// the precomposed form has no key) are attributed to the finger of their
// base key when one exists, otherwise skipped.
func AggregateByFinger(aggs []model.CharAggregate) []FingerAggregate {
	byFinger := map[layout.Finger]*FingerAggregate{}
	for _, agg := range aggs {
		runes := []rune(agg.Char)
		if len(runes) == 0 {
			continue
		}
		key, _, ok := layout.FindForChar(runes[0])
		if !ok {
			if _, vowel, composed := deadkey.Decompose(runes[0]); composed {
				key, _, ok = layout.FindForChar(vowel)
			}
			if !ok {
				continue
			}
		}
		entry, exists := byFinger[key.Finger]
		if !exists {
			entry = &FingerAggregate{Finger: key.Finger}
			byFinger[key.Finger] = entry
		}
		entry.Correct += agg.Correct
		entry.Incorrect += agg.Incorrect
		entry.LatencySumMs += agg.LatencySumMs
		entry.LatencyCount += agg.LatencyCount
	}
	out := make([]FingerAggregate, 0, len(byFinger))
	for _, entry := range byFinger {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Finger < out[j].Finger
	})
	return out
}
