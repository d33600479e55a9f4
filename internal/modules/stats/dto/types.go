package dto

type Usage struct {
	App        string
	Date       string
	DurationMS int64
}

type AggregateInput struct {
	Usage []Usage
	// Estimate turns on the synthesis-only alert estimates; the live
	// rollover path always aggregates with it off.
	Estimate  bool
	Synthetic bool
}

type DailyStat struct {
	Date             string
	App              string
	TotalDurationMS  int64
	SessionCount     int
	LongestSessionMS int64
	AverageSessionMS int64
	AlertsShown      int
	AlertsProceeded  int
	Synthetic        bool
}

type QueryInput struct {
	App      string
	FromDate string
	ToDate   string
}
