package dto

type SeedInput struct {
	Persona string
	Days    int
	Apps    []string
	// Seed pins the rng stream; 0 means derive one from the clock.
	Seed int64
}

type ExtractorSeedInput struct {
	Extractor string
	Days      int
	Seed      int64
}

type SeedOutput struct {
	Persona      string
	Seed         int64
	Days         int
	Sessions     int
	QuickReopens int
	Goals        int
	Stats        int
	Results      int

	// Fallback reports that extractor seeding found too little real
	// usage and fell back to the synthetic baseline.
	Fallback       bool
	ExtractedTotal int // minutes of real usage ingested
}
