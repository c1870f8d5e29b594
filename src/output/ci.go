package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sofmeright/hookwright/src/hook"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", ts, id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", ts, id)
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr"`
}

// WriteRunJUnit writes hook results as JUnit XML for CI test reporting.
// Each hook becomes a test suite; each file with findings becomes a
// failing test case, plus one synthetic case for the hook itself.
func WriteRunJUnit(dir string, results []hook.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	totalTests := 0
	totalFailures := 0
	var totalTime time.Duration
	var suites []JUnitTestSuite

	for _, r := range results {
		suite := JUnitTestSuite{
			Name: "hookwright/" + r.ID,
			Time: fmt.Sprintf("%.3f", r.Duration.Seconds()),
		}
		totalTime += r.Duration

		byFile := map[string][]hook.Finding{}
		for _, f := range r.Findings {
			byFile[f.File] = append(byFile[f.File], f)
		}

		for file, ff := range byFile {
			var msgs []string
			for _, f := range ff {
				if f.Line > 0 {
					msgs = append(msgs, fmt.Sprintf("line %d: %s", f.Line, f.Message))
				} else {
					msgs = append(msgs, f.Message)
				}
			}
			name := file
			if name == "" {
				name = "(run)"
			}
			suite.Cases = append(suite.Cases, JUnitTestCase{
				Name:      name,
				Classname: r.ID,
				Time:      "0.000",
				Failure: &JUnitFailure{
					Message: fmt.Sprintf("%d findings", len(ff)),
					Type:    "finding",
					Body:    strings.Join(msgs, "\n"),
				},
			})
			suite.Failures++
		}

		// One case for the hook's own outcome, so clean hooks still show up.
		hookCase := JUnitTestCase{
			Name:      r.Name,
			Classname: r.ID,
			Time:      fmt.Sprintf("%.3f", r.Duration.Seconds()),
		}
		switch {
		case r.Skipped:
			hookCase.Skipped = &JUnitSkipped{Message: r.SkipReason}
		case r.Err != nil:
			hookCase.Failure = &JUnitFailure{
				Message: r.Err.Error(),
				Type:    "error",
			}
			suite.Failures++
		}
		suite.Cases = append(suite.Cases, hookCase)

		suite.Tests = len(suite.Cases)
		totalTests += suite.Tests
		totalFailures += suite.Failures
		suites = append(suites, suite)
	}

	report := JUnitTestSuites{
		Name:     "hookwright",
		Tests:    totalTests,
		Failures: totalFailures,
		Time:     fmt.Sprintf("%.3f", totalTime.Seconds()),
		Suites:   suites,
	}

	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)

	return os.WriteFile(filepath.Join(dir, "hooks.junit.xml"), data, 0o644)
}
