package config

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

//go:embed default_content.yaml
var defaultContent []byte

// DefaultName is the path reported for the embedded content.
const DefaultName = "<embedded>"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseContent loads a content file from disk, validates it, and returns the resulting model.
func ParseContent(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, folioerrors.NewParseError(path, 0, err)
	}
	return ParseBytes(path, data)
}

// ParseBytes decodes and validates content. name is used in error messages.
func ParseBytes(name string, data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, folioerrors.NewParseError(name, extractLine(err), err)
	}

	if err := ValidateContent(&content); err != nil {
		return nil, err
	}

	return &content, nil
}

// Default returns the embedded portfolio content.
func Default() *Content {
	content, err := ParseBytes(DefaultName, defaultContent)
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return content
}

// Load returns the content at path, or the embedded content when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default(), nil
	}
	return ParseContent(path)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
