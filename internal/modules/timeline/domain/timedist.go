package domain

import "unhook/internal/platform/random"

// TimeDistribution weights the five day-part buckets. Weights are
// relative; they do not have to sum to 1.
type TimeDistribution struct {
	Morning   float64 // 06:00-10:00
	Midday    float64 // 10:00-15:00
	Evening   float64 // 15:00-20:00
	LateNight float64 // 20:00-24:00
	VeryLate  float64 // 00:00-06:00
}

type hourBucket struct {
	start int
	end   int // exclusive
}

// Bucket boundaries are policy, fixed here.
var buckets = [5]hourBucket{
	{6, 10},
	{10, 15},
	{15, 20},
	{20, 24},
	{0, 6},
}

// LateNightHour reports whether an hour falls in the late-night window
// used for intervention context (22:00-05:00).
func LateNightHour(hour int) bool {
	return hour >= 22 || hour < 5
}

// SampleHour picks a day-part bucket by weight, then an hour uniformly
// inside it. An all-zero distribution degrades to uniform over 24 hours
// rather than erroring.
func SampleHour(r random.Rand, dist TimeDistribution) int {
	weights := []float64{dist.Morning, dist.Midday, dist.Evening, dist.LateNight, dist.VeryLate}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return r.Intn(24)
	}
	bucket := buckets[random.WeightedIndex(r, weights)]
	return bucket.start + r.Intn(bucket.end-bucket.start)
}
