package dto

type Goal struct {
	App               string
	DailyLimitMinutes int
	StartDate         string
	CurrentStreak     int
	LongestStreak     int
	LastUpdatedDate   string
}

type GenerateInput struct {
	Seed           int64
	Apps           []string
	StartDate      string
	HasGoals       bool
	ComplianceRate float64
	StreakDays     [2]int
}

type SetInput struct {
	App               string
	DailyLimitMinutes int
}

type RolloverInput struct {
	// Date is the day being closed out (YYYY-MM-DD); empty means
	// yesterday in the local calendar.
	Date string
}

type GoalRollover struct {
	App            string
	UsageMinutes   int
	Skipped        bool // day already applied
	Met            bool
	Frozen         bool
	Broke          bool
	CurrentStreak  int
	LongestStreak  int
	RecoveryOpened bool
	RecoveryDone   bool
}

type RolloverOutput struct {
	Date     string
	Attempts int
	Results  []GoalRollover
}

type Recovery struct {
	App               string
	PreviousStreak    int
	StartDate         string
	DaysElapsed       int
	Complete          bool
	CompletedDate     string
	NotificationShown bool
}

type FreezeInput struct {
	App  string
	Date string // empty means today
}

type FreezeStatus struct {
	App       string
	Date      string
	Remaining int
}
