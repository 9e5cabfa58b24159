// iojson are utilities for writing JSON from a command line interface
// perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

func jsonError(msg string, jsonErr error) string {
	// Use json.Marshal to properly escape strings
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteWith writes obj to w as indented JSON. Marshaling failures indicate a
// bug and are reported to ew as a JSON error object.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errStr := jsonError("error marshaling in iojson.WriteWith", err)
		_, err = fmt.Fprintln(ew, errStr)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj to w as a single compact JSON line, suitable for
// streaming one record per line.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
