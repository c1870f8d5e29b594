package hook

import "time"

// Result is the outcome of one hook over its selected file set.
type Result struct {
	ID         string
	Name       string
	Files      int // files examined
	Cached     int // files answered from cache
	Duration   time.Duration
	Skipped    bool
	SkipReason string
	Findings   []Finding
	Output     []byte // combined stdout/stderr of external hooks
	Err        error  // execution failure (not a finding)
}

// Failed reports whether the hook should fail the run. A hook that
// fixed files counts as failed — the fixes need staging before the
// commit can proceed.
func (r Result) Failed() bool {
	return r.Err != nil || len(r.Findings) > 0
}

// FixedFiles returns how many distinct files the hook modified.
func (r Result) FixedFiles() int {
	seen := map[string]bool{}
	for _, f := range r.Findings {
		if f.Fixed {
			seen[f.File] = true
		}
	}
	return len(seen)
}

// Tally sums failures across results.
func Tally(results []Result) (failed, fixed, findings int) {
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		fixed += r.FixedFiles()
		findings += len(r.Findings)
	}
	return failed, fixed, findings
}
