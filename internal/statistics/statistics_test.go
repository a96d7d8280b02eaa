package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.9))
	assert.Nil(t, s.WindowMeans(10))
	assert.Error(t, s.Validate())
}

func TestStatisticsMoments(t *testing.T) {
	var s Statistics
	for i, v := range []float64{-1, 1, 3, -2, 4} {
		s.Add(HandResult{Net: v, Position: i % 2, Acted: true, Pot: 3 + i})
	}

	require.NoError(t, s.Validate())
	assert.Equal(t, 5, s.Hands)
	assert.InDelta(t, 1.0, s.Mean(), 1e-12)
	// deviations 4,0,4,9,9 -> 26/4
	assert.InDelta(t, 6.5, s.Variance(), 1e-12)
	assert.InDelta(t, math.Sqrt(6.5)/math.Sqrt(5), s.StdError(), 1e-12)
	assert.InDelta(t, 1.0, s.Median(), 1e-12)
	assert.InDelta(t, -2.0, s.Percentile(0), 1e-12)
	assert.InDelta(t, 4.0, s.Percentile(1), 1e-12)
	assert.InDelta(t, 2.0, s.Percentile(0.625), 1e-12)

	low, high := s.ConfidenceInterval95()
	assert.InDelta(t, s.Mean(), (low+high)/2, 1e-12)
	assert.Equal(t, 7, s.MaxPot)
}

func TestStatisticsShowdownSplit(t *testing.T) {
	var s Statistics
	s.Add(HandResult{Net: 4, WentToShowdown: true, Acted: true})
	s.Add(HandResult{Net: -4, WentToShowdown: true, Acted: true})
	s.Add(HandResult{Net: 2, Acted: true})
	s.Add(HandResult{Net: -1})

	require.NoError(t, s.Validate())
	assert.Equal(t, 1, s.ShowdownWins)
	assert.Equal(t, 1, s.UncontestedWins)
	assert.InDelta(t, 0.0, s.ShowdownNet, 1e-12)
	assert.InDelta(t, 1.0, s.UncontestedNet, 1e-12)
	assert.Equal(t, 1, s.Idle)
}

func TestStatisticsPositions(t *testing.T) {
	var s Statistics
	s.Add(HandResult{Net: 2, Position: 2})
	s.Add(HandResult{Net: 4, Position: 2})
	s.Add(HandResult{Net: -1, Position: 0})

	require.Len(t, s.Positions, 3)
	assert.InDelta(t, 3.0, s.PositionMean(2), 1e-12)
	assert.InDelta(t, -1.0, s.PositionMean(0), 1e-12)
	assert.Zero(t, s.PositionMean(1))
	assert.Zero(t, s.PositionMean(9))
}

func TestWindowMeansAndTrend(t *testing.T) {
	var s Statistics
	for _, v := range []float64{-2, -2, 0, 0, 2, 2, 5} {
		s.Add(HandResult{Net: v})
	}

	assert.Equal(t, []float64{-2, 0, 2, 5}, s.WindowMeans(2))
	assert.InDelta(t, 7.0, s.Trend(2), 1e-12)
	assert.Zero(t, s.Trend(100))
}

func TestValidateDetectsTampering(t *testing.T) {
	var s Statistics
	s.Add(HandResult{Net: 1})
	s.Values = append(s.Values, 3)
	assert.ErrorContains(t, s.Validate(), "values length")
}
