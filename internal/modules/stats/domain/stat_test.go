package domain_test

import (
	"math/rand"
	"reflect"
	"testing"

	"unhook/internal/modules/stats/domain"
)

func sampleUsage() []domain.Usage {
	return []domain.Usage{
		{App: "instagram", Date: "2026-03-04", DurationMS: 600_000},
		{App: "instagram", Date: "2026-03-04", DurationMS: 300_000},
		{App: "instagram", Date: "2026-03-04", DurationMS: 900_000},
		{App: "tiktok", Date: "2026-03-04", DurationMS: 1_200_000},
		{App: "instagram", Date: "2026-03-05", DurationMS: 450_000},
	}
}

func TestAggregateGroupsByDateAndApp(t *testing.T) {
	t.Parallel()
	stats := domain.Aggregate(sampleUsage(), domain.EstimatePolicy{}, false)
	if len(stats) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(stats))
	}
	first := stats[0]
	if first.Date != "2026-03-04" || first.App != "instagram" {
		t.Fatalf("unexpected first group %s/%s", first.Date, first.App)
	}
	if first.TotalDurationMS != 1_800_000 {
		t.Fatalf("total duration = %d, want sum of group durations", first.TotalDurationMS)
	}
	if first.SessionCount != 3 {
		t.Fatalf("session count = %d, want 3", first.SessionCount)
	}
	if first.LongestSessionMS != 900_000 {
		t.Fatalf("longest session = %d, want 900000", first.LongestSessionMS)
	}
	if first.AverageSessionMS != 600_000 {
		t.Fatalf("average session = %d, want 600000", first.AverageSessionMS)
	}
	if first.AlertsShown != 0 || first.AlertsProceeded != 0 {
		t.Fatalf("estimates must stay zero when the policy is disabled")
	}
}

func TestAggregateEstimatesOnlyWhenEnabled(t *testing.T) {
	t.Parallel()
	policy := domain.EstimatePolicy{Enabled: true, AlertShownFraction: 0.6, AlertProceedFraction: 0.5}
	stats := domain.Aggregate(sampleUsage(), policy, true)
	for _, stat := range stats {
		want := int(float64(stat.SessionCount)*0.6 + 0.5)
		if stat.AlertsShown != want {
			t.Fatalf("alerts shown for %s/%s = %d, want %d", stat.Date, stat.App, stat.AlertsShown, want)
		}
		if !stat.Synthetic {
			t.Fatalf("synthesis aggregation must mark stats synthetic")
		}
	}
}

func TestAggregateInvariantToInputOrder(t *testing.T) {
	t.Parallel()
	usage := sampleUsage()
	shuffled := append([]domain.Usage{}, usage...)
	rand.New(rand.NewSource(99)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	a := domain.Aggregate(usage, domain.EstimatePolicy{}, false)
	b := domain.Aggregate(shuffled, domain.EstimatePolicy{}, false)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregation must not depend on input order")
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()
	if got := domain.Aggregate(nil, domain.EstimatePolicy{}, false); len(got) != 0 {
		t.Fatalf("empty usage must aggregate to nothing")
	}
}
