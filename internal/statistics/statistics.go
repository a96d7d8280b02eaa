// Package statistics summarises the per-hand results of one tracked seat.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// HandResult is the outcome of one hand for the tracked seat.
type HandResult struct {
	Net            float64 // chips won or lost, blinds included
	Position       int     // seats left of the dealer, 0 is the dealer
	WentToShowdown bool
	Acted          bool // the seat made at least one decision
	Pot            int
}

// PositionStats aggregates results for one table position.
type PositionStats struct {
	Hands int
	Sum   float64
	Sum2  float64
}

// Mean returns the mean result at the position.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.Sum / float64(p.Hands)
}

// Statistics accumulates hand results. The zero value is ready to use.
type Statistics struct {
	Hands  int
	Sum    float64
	Sum2   float64   // sum of squares for the variance
	Values []float64 // every result, in hand order

	// Wins and chips split by how the hand ended; losses count too.
	ShowdownWins    int
	UncontestedWins int
	ShowdownNet     float64
	UncontestedNet  float64

	Positions []PositionStats // indexed by Position
	MaxPot    int
	Idle      int // hands the seat never acted in
}

// Add records one result.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.Sum += r.Net
	s.Sum2 += r.Net * r.Net
	s.Values = append(s.Values, r.Net)

	if r.WentToShowdown {
		s.ShowdownNet += r.Net
		if r.Net > 0 {
			s.ShowdownWins++
		}
	} else {
		s.UncontestedNet += r.Net
		if r.Net > 0 {
			s.UncontestedWins++
		}
	}

	if r.Position >= 0 {
		for len(s.Positions) <= r.Position {
			s.Positions = append(s.Positions, PositionStats{})
		}
		ps := &s.Positions[r.Position]
		ps.Hands++
		ps.Sum += r.Net
		ps.Sum2 += r.Net * r.Net
	}

	s.MaxPot = max(s.MaxPot, r.Pot)
	if !r.Acted {
		s.Idle++
	}
}

// Mean returns the mean net chips per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.Sum2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean, margin := s.Mean(), 1.96*s.StdError()
	return mean - margin, mean + margin
}

func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the linearly interpolated value at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result at position, 0 when unseen.
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= len(s.Positions) {
		return 0
	}
	return s.Positions[position].Mean()
}

// WindowMeans splits the results into consecutive windows of size hands and
// returns the mean of each. A trailing partial window is included.
func (s *Statistics) WindowMeans(size int) []float64 {
	if size <= 0 || len(s.Values) == 0 {
		return nil
	}
	var means []float64
	for start := 0; start < len(s.Values); start += size {
		window := s.Values[start:min(start+size, len(s.Values))]
		var sum float64
		for _, v := range window {
			sum += v
		}
		means = append(means, sum/float64(len(window)))
	}
	return means
}

// Trend returns the mean of the last window minus the mean of the first, for
// windows of size hands.
func (s *Statistics) Trend(size int) float64 {
	means := s.WindowMeans(size)
	if len(means) < 2 {
		return 0
	}
	return means[len(means)-1] - means[0]
}

// Validate checks the accumulators agree with each other.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if math.Abs(s.Sum-s.ShowdownNet-s.UncontestedNet) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f showdown=%.6f uncontested=%.6f", s.Sum, s.ShowdownNet, s.UncontestedNet)
	}
	if wins := s.ShowdownWins + s.UncontestedWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	positioned := 0
	for _, p := range s.Positions {
		positioned += p.Hands
	}
	if positioned != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positioned, s.Hands)
	}
	return nil
}
