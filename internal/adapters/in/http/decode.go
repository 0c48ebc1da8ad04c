package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// batchRequest is the envelope of the batch create endpoints. Entries are
// kept raw so that each one is decoded, and rejected, on its own.
type batchRequest struct {
	Data *[]json.RawMessage `json:"data"`
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return body, nil
}

func decodeBatch(c echo.Context) ([]json.RawMessage, error) {
	body, err := readBody(c)
	if err != nil {
		return nil, err
	}

	var req batchRequest
	if err = json.Unmarshal(body, &req); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if req.Data == nil {
		return nil, errs.NewValueIsRequiredError("data")
	}
	return *req.Data, nil
}

// decodeStrict decodes one JSON object into dst, refusing unknown keys.
func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}

// decodeObject splits a JSON object into its keys.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("expected a JSON object")
	}
	return fields, nil
}

// entryID extracts the raw id of a batch entry and, when it is a JSON
// integer, its value.
func entryID(raw json.RawMessage, key string) (json.RawMessage, int64) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, 0
	}
	rawID, ok := fields[key]
	if !ok {
		return nil, 0
	}
	var id int64
	if err = json.Unmarshal(rawID, &id); err != nil {
		return rawID, 0
	}
	return rawID, id
}

// requireFields reports the first required key that is absent or null.
func requireFields(raw json.RawMessage, keys ...string) error {
	fields, err := decodeObject(raw)
	if err != nil {
		return err
	}
	for _, key := range keys {
		value, ok := fields[key]
		if !ok || string(value) == "null" {
			return errs.NewValueIsRequiredError(key)
		}
	}
	return nil
}

func malformed(key string, err error) error {
	return errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("malformed entry: %w", err))
}
