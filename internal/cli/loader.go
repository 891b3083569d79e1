package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// LoadDocument reads and decodes a filter document. The format is chosen
// by extension: .yaml/.yml or .cue. The decoded document is validated for
// shape before being returned.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter document: %w", err)
	}

	var doc Document
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".cue":
		if err := decodeCUE(path, data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported filter document extension %q (want .yaml, .yml, or .cue)", ext)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &doc, nil
}

func decodeCUE(path string, data []byte, doc *Document) error {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fmt.Errorf("compiling CUE document %s: %w", path, err)
	}
	if err := value.Decode(doc); err != nil {
		return fmt.Errorf("decoding CUE document %s: %w", path, err)
	}
	return nil
}
