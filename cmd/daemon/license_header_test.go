// SPDX-License-Identifier: MIT
package main

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const licenseHeader = "// SPDX-License-Identifier: MIT"

// Every Go source file opens with the same license line and no other.
func TestLicenseHeaders(t *testing.T) {
	repoRoot := filepath.Clean(filepath.Join("..", ".."))

	var violations []string
	for _, root := range []string{"internal", "cmd"} {
		err := filepath.WalkDir(filepath.Join(repoRoot, root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); name == "_examples" || name == "testdata" {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".go") {
				return nil
			}
			first, other, err := scanHeader(path)
			if err != nil {
				return err
			}
			if first != licenseHeader {
				violations = append(violations, path+": first line "+first)
			}
			if other != "" {
				violations = append(violations, path+": "+other)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("scan %s: %v", root, err)
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("inconsistent license headers:\n%s", strings.Join(violations, "\n"))
	}
}

// scanHeader returns the first line of path and the first other license
// notice found in its leading comment block.
func scanHeader(path string) (first, other string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for n := 0; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if n == 0 {
			first = line
			continue
		}
		if strings.HasPrefix(line, "package ") {
			break
		}
		if strings.Contains(line, "License") || strings.Contains(line, "Copyright") {
			return first, line, nil
		}
	}
	return first, "", sc.Err()
}
