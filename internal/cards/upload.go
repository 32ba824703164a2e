package cards

import (
	"fmt"
	"path/filepath"
	"strings"

	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

// DefaultUploadExtensions are the model formats the 3D printing estimate accepts.
var DefaultUploadExtensions = []string{".stl", ".obj", ".3mf"}

// ValidateUpload checks a file offered to the estimate form. The returned
// *errors.ValidationError carries a message fit for inline display.
func ValidateUpload(filename string, accepted []string) error {
	if len(accepted) == 0 {
		accepted = DefaultUploadExtensions
	}

	name := strings.TrimSpace(filename)
	if name == "" {
		return folioerrors.NewValidationError("file", "choose a file to upload", nil)
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range accepted {
		if ext == strings.ToLower(want) {
			return nil
		}
	}

	return folioerrors.NewValidationError("file",
		fmt.Sprintf("%s is not supported, upload one of: %s", filepath.Base(name), strings.Join(accepted, ", ")), nil)
}
