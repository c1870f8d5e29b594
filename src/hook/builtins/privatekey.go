package builtins

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "detect-private-key",
		Name:        "Detect private keys",
		Description: "Detects private key material by its armor headers.",
		Types:       []string{"text"},
		New:         func() hook.Hook { return &privateKeyHook{} },
	})
}

type privateKeyHook struct{}

var keyMarkers = []string{
	"BEGIN RSA PRIVATE KEY",
	"BEGIN DSA PRIVATE KEY",
	"BEGIN EC PRIVATE KEY",
	"BEGIN OPENSSH PRIVATE KEY",
	"BEGIN PRIVATE KEY",
	"BEGIN ENCRYPTED PRIVATE KEY",
	"BEGIN PGP PRIVATE KEY BLOCK",
	"PuTTY-User-Key-File-2",
	"BEGIN SSH2 ENCRYPTED PRIVATE KEY",
}

func (h *privateKeyHook) ID() string { return "detect-private-key" }

func (h *privateKeyHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	f, err := os.Open(file.AbsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var findings []hook.Finding
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		for _, marker := range keyMarkers {
			if strings.Contains(line, marker) {
				findings = append(findings, hook.Finding{
					File:    file.Path,
					Line:    lineNum,
					Hook:    h.ID(),
					Message: "private key detected: " + marker,
				})
				break
			}
		}
	}

	return findings, scanner.Err()
}
