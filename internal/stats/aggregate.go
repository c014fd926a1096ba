package stats

import (
	"resp-analyzer/internal/schedule"
)

// Default minimum group sizes.
const (
	DefaultMinActivities         = 50
	DefaultLocationMinActivities = 5
)

// Substitutes for empty early / late subsets.
const (
	DefaultMinRatio = 1.0
	DefaultMaxRatio = 2.0
)

// AggregateOptions configures the group aggregator.
type AggregateOptions struct {
	MinActivities int  `json:"min_activities" validate:"min=1"`
	ByLocation    bool `json:"by_location"`
}

// GroupKey identifies a responsibility group, optionally split by location.
type GroupKey struct {
	Group    string `json:"G - Resp"`
	Region   string `json:"Region,omitempty"`
	Division string `json:"Division,omitempty"`
	Location string `json:"Location,omitempty"`
}

// Summary is the three-point ratio summary of one group.
type Summary struct {
	GroupKey
	Activities int   `json:"activities"`
	Min        Ratio `json:"Min"`
	MostLikely Ratio `json:"Most Likely"`
	Max        Ratio `json:"Max"`
}

type accumulator struct {
	count                 int
	sumOD, sumAC          float64
	earlyOD, earlyAC      float64
	lateOD, lateAC        float64
	earlyCount, lateCount int
}

func (a *accumulator) add(r schedule.Record) {
	a.count++
	a.sumOD += r.OriginalDuration
	a.sumAC += r.ActualDuration

	switch {
	case r.ActualDuration < r.OriginalDuration:
		a.earlyCount++
		a.earlyOD += r.OriginalDuration
		a.earlyAC += r.ActualDuration
	case r.ActualDuration > r.OriginalDuration:
		a.lateCount++
		a.lateOD += r.OriginalDuration
		a.lateAC += r.ActualDuration
	}
}

func (a *accumulator) summary(key GroupKey) Summary {
	s := Summary{
		GroupKey:   key,
		Activities: a.count,
		Min:        Known(DefaultMinRatio),
		MostLikely: WeightedRatio(a.sumAC, a.sumOD),
		Max:        Known(DefaultMaxRatio),
	}

	if a.earlyCount > 0 {
		if r := WeightedRatio(a.earlyAC, a.earlyOD); r.Valid {
			s.Min = r
		}
	}
	if a.lateCount > 0 {
		if r := WeightedRatio(a.lateAC, a.lateOD); r.Valid {
			s.Max = r
		}
	}

	return s
}

// KeyOf returns the grouping key of a record under the given options.
// Missing location values form their own bucket.
func KeyOf(r schedule.Record, byLocation bool) GroupKey {
	k := GroupKey{Group: r.Group}
	if byLocation {
		k.Region = r.Region
		k.Division = r.Division
		k.Location = r.Location
	}
	return k
}

// Aggregate partitions clamped records into groups and computes the ratio summary of every
// group holding at least MinActivities records. Output follows first-seen key order.
func Aggregate(records []schedule.Record, opts AggregateOptions) []Summary {
	minActivities := opts.MinActivities
	if minActivities <= 0 {
		minActivities = DefaultMinActivities
		if opts.ByLocation {
			minActivities = DefaultLocationMinActivities
		}
	}

	groups := make(map[GroupKey]*accumulator)
	order := make([]GroupKey, 0)

	for _, r := range records {
		k := KeyOf(r, opts.ByLocation)
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
			order = append(order, k)
		}
		acc.add(r)
	}

	results := make([]Summary, 0, len(order))
	for _, k := range order {
		acc := groups[k]
		if acc.count < minActivities {
			continue
		}
		results = append(results, acc.summary(k))
	}

	return results
}
