package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tagmanager/internal/domain"
)

// readInput returns the raw tag data from --data, or from --file ("-" is stdin)
func readInput(file, data string) ([]byte, error) {
	switch {
	case data != "" && file != "":
		return nil, errors.New("use either --file or --data, not both")
	case data != "":
		return []byte(data), nil
	case file == "-":
		return io.ReadAll(os.Stdin)
	case file != "":
		return os.ReadFile(file)
	}
	return nil, errors.New("tag data required: pass --file or --data")
}

// decodeTag parses YAML (or JSON, a subset of it) into a tag
func decodeTag(raw []byte) (domain.Tag, error) {
	var tag domain.Tag
	if err := yaml.Unmarshal(raw, &tag); err != nil {
		return tag, fmt.Errorf("failed to parse tag: %w", err)
	}
	return tag, nil
}

func decodePatch(raw []byte) (domain.Patch, error) {
	var patch domain.Patch
	if err := yaml.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("failed to parse update: %w", err)
	}
	if len(patch) == 0 {
		return nil, errors.New("update is empty")
	}
	return patch, nil
}
