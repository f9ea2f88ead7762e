package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
)

// Load parses a problem document. JSON is detected by a leading '{';
// anything else is read as TOML.
func Load(data []byte) (*problem.Problem, error) {
	var (
		p   *problem.Problem
		err error
	)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		p, err = problem.ParseJSON(data)
	} else {
		p, err = problem.Parse(data)
	}
	if err != nil {
		return nil, errors.FromRouting(err)
	}
	return p, nil
}

// LoadFile reads a problem file. A problem without a name is named after
// the file.
func LoadFile(path string) (*problem.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	p, err := Load(data)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}
