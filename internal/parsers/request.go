package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/Ayushs1043/blackrock-savings-challenge/pkg/errors"
)

// StdinPath is the pseudo-path selecting standard input as the request
// source.
const StdinPath = "-"

// LoadRequest decodes a JSON request payload from a file, or from stdin
// when the path is "-". Unknown fields are rejected so typos surface
// instead of silently producing empty collections.
func LoadRequest(path string, v interface{}) error {
	var reader io.Reader
	source := path

	if path == StdinPath {
		reader = os.Stdin
		source = "stdin"
	} else {
		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return apperrors.FileError(apperrors.CodeFileNotFound, path, err)
			}
			return apperrors.Wrap(err, apperrors.CategoryFile, apperrors.CodeFileNotFound,
				fmt.Sprintf("failed to open request file: %s", path))
		}
		defer file.Close()
		reader = file
	}

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return apperrors.ParseError(apperrors.CodeInvalidFormat, source, 0, "", "", err).
			WithSuggestion("ensure the request payload is valid JSON matching the operation's schema")
	}

	return nil
}
