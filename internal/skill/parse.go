package skill

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// ParseManifest extracts and decodes the frontmatter of a SKILL.md document.
func ParseManifest(data []byte) (*Manifest, error) {
	front, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(front, &m); err != nil {
		return nil, fmt.Errorf("decode skill frontmatter: %w", err)
	}
	return &m, nil
}

// splitFrontmatter returns the bytes between the leading "---" fence and
// its closing fence.
func splitFrontmatter(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || string(bytes.TrimRight(lines[0], "\r\n")) != frontmatterDelim {
		return nil, fmt.Errorf("missing frontmatter: document must start with %q", frontmatterDelim)
	}

	var front []byte
	for _, line := range lines[1:] {
		if string(bytes.TrimRight(line, "\r\n")) == frontmatterDelim {
			return front, nil
		}
		front = append(front, line...)
	}
	return nil, fmt.Errorf("unterminated frontmatter: no closing %q", frontmatterDelim)
}
