package command

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileValidator decides whether a resolved input file is acceptable.
type FileValidator func(path string) bool

// resolveFiles expands glob tokens against the working directory, drops
// candidates that are missing, irregular, or rejected by the validator
// (warning per item), and returns the survivors as absolute paths in
// lexical order. A non-empty token list resolving to nothing is an error.
func (p *Parser) resolveFiles(tokens []string) ([]string, error) {
	var resolved []string
	for _, token := range tokens {
		if strings.ContainsAny(token, "*?") {
			matches, err := filepath.Glob(token)
			if err != nil {
				p.logger().Warn("invalid glob pattern", "pattern", token, "error", err)
				continue
			}
			for _, match := range matches {
				p.acceptFile(match, &resolved)
			}
			continue
		}
		p.acceptFile(token, &resolved)
	}

	sort.Strings(resolved)

	if len(resolved) == 0 && len(tokens) > 0 {
		return nil, &Error{Kind: KindNoValidFiles, Message: "no valid input files found"}
	}
	return resolved, nil
}

func (p *Parser) acceptFile(path string, out *[]string) {
	info, err := os.Stat(path)
	if err != nil {
		p.logger().Warn("file not found", "path", path)
		return
	}
	if !info.Mode().IsRegular() {
		p.logger().Warn("not a regular file", "path", path)
		return
	}
	if p.ValidateFile != nil && !p.ValidateFile(path) {
		p.logger().Warn("file validation failed", "path", path)
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		p.logger().Warn("cannot resolve absolute path", "path", path, "error", err)
		return
	}
	*out = append(*out, abs)
}
