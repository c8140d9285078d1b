package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// tenant_guard scans the embedded .sql queries and fails when a statement reading or writing
// lab data has no lab_id filter. Exit code 0 = ok, 1 = violation, 2 = other error.
func main() {
	root := flag.String("root", "internal/repo/queries", "directory holding .sql query files")
	flag.Parse()

	violations, err := scan(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenant_guard error: %v\n", err)
		os.Exit(2)
	}
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "VIOLATION: %s has no lab_id filter\n", v)
	}
	if len(violations) > 0 {
		os.Exit(1)
	}
	fmt.Println("tenant_guard: OK")
}

var (
	reStatement = regexp.MustCompile(`(?i)^\s*(select|update|delete)\b`)
	reLab       = regexp.MustCompile(`(?i)\blab_id\s*=\s*\$?[0-9a-z_]+`)
)

func scan(dir string) ([]string, error) {
	var violations []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		ok, err := checkFile(path)
		if err != nil {
			return err
		}
		if !ok {
			violations = append(violations, path)
		}
		return nil
	})
	return violations, err
}

func checkFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	s := bufio.NewScanner(f)
	foundStmt, foundLab := false, false
	for s.Scan() {
		line := s.Text()
		if reStatement.MatchString(line) {
			foundStmt = true
		}
		if reLab.MatchString(line) {
			foundLab = true
		}
	}
	if err := s.Err(); err != nil {
		return false, err
	}
	return !foundStmt || foundLab, nil
}
