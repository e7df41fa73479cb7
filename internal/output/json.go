package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// ─── json ─────────────────────────────────────────────────────────────────────

// PrintJSON writes v to stdout as indented JSON. The domain types carry
// their own wire tags.
func PrintJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// WriteJSON writes v to path as indented JSON.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
