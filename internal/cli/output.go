package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/McKayRansom/auto-factorio/pkg/pipeline"
)

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	pipeline.FormatText: "txt",
	pipeline.FormatJSON: "json",
	pipeline.FormatDOT:  "dot",
	pipeline.FormatSVG:  "svg",
}

// basePath derives the base output path from the output and input paths.
// Without an output it strips the extension from input; with one it strips
// a known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, known := range extensions {
		if ext == known {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}

// outputPaths decides where each artifact goes. A single format written with
// an explicit output path uses it verbatim; everything else becomes
// base.<ext>. The result has no entry for text printed to the terminal.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		if f == pipeline.FormatText && output == "" {
			continue
		}
		paths[f] = base + "." + extensions[f]
	}
	return paths
}

// writeArtifacts writes every artifact that has a path and returns the
// written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, paths map[string]string) ([]string, error) {
	var written []string
	for _, f := range formats {
		path, ok := paths[f]
		if !ok {
			continue
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
