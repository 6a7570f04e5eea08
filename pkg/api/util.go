package api

import (
	"encoding/json"
	"fmt"
	"io"
)

// readJSON into interface
func readJSON(in io.Reader, v interface{}) error {
	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("io read: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// readString drains the reader, errors yield an empty string
func readString(in io.Reader) string {
	body, err := io.ReadAll(in)
	if err != nil {
		return ""
	}

	return string(body)
}
