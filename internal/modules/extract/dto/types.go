package dto

type Manifest struct {
	Name    string
	Binary  string
	SHA256  string
	Enabled bool
}

type Metadata struct {
	Name    string
	Version string
	Source  string
}

type Record struct {
	App     string
	StartMS int64
	EndMS   int64
}

type RegisterInput struct {
	Name   string
	Binary string
}

type PullInput struct {
	Name    string
	StartMS int64
	EndMS   int64
}

type PullOutput struct {
	Records      []Record
	TotalMinutes int
}
