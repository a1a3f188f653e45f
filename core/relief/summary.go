package relief

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fawsd/crewrotation/core/model"
)

// summaryWindows are the relief-window buckets, in days.
var summaryWindows = []int{7, 30, 60, 90}

// WindowCount is one relief-window bucket of the summary.
type WindowCount struct {
	Days    int     `json:"days"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary aggregates how close a set of onboard crew is to relief.
type Summary struct {
	Onboard          int           `json:"onboard"`
	Windows          []WindowCount `json:"windows"`
	MeanDayRemains   float64       `json:"mean_day_remains"`
	MedianDayRemains float64       `json:"median_day_remains"`
}

// RotationSummary counts the onboard crew of the given slice per relief
// window and computes aggregate day-remaining statistics. Records carrying
// the day-remains sentinel are counted onboard but excluded from the
// statistics, since the sentinel would skew both mean and median.
func RotationSummary(crew []model.CrewRecord) Summary {
	s := Summary{Windows: make([]WindowCount, len(summaryWindows))}
	for i, w := range summaryWindows {
		s.Windows[i].Days = w
	}

	var remains []float64
	for _, rec := range crew {
		if !rec.OnBoard() {
			continue
		}
		s.Onboard++
		dr := rec.RemainingDays()
		for i, w := range summaryWindows {
			if dr <= w {
				s.Windows[i].Count++
			}
		}
		if dr != model.DayRemainsSentinel {
			remains = append(remains, float64(dr))
		}
	}

	if s.Onboard > 0 {
		for i := range s.Windows {
			s.Windows[i].Percent = 100 * float64(s.Windows[i].Count) / float64(s.Onboard)
		}
	}
	if len(remains) > 0 {
		sort.Float64s(remains)
		s.MeanDayRemains = stat.Mean(remains, nil)
		s.MedianDayRemains = stat.Quantile(0.5, stat.Empirical, remains, nil)
	}
	return s
}
