package example

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
)

type Format string

const (
	FormatMP4 Format = "mp4"
)

type Job struct {
	Status Status
}

type Export struct {
	Format Format
}

func bad() {
	j := &Job{}
	j.Status = "archived" // want "enum field Status assigned string literal"

	e := &Export{}
	e.Format = "webm" // want "enum field Format assigned string literal"
}

func good() {
	j := &Job{}
	j.Status = StatusSucceeded // OK: using constant

	e := &Export{}
	e.Format = FormatMP4 // OK: using constant
}

func alsoGood() {
	// OK: Variable, not literal
	status := StatusPending
	j := &Job{Status: status}
	_ = j
}
