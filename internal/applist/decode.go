package applist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/koios/moonlight-shelf/pkg/models"
)

// ErrMalformed is returned when the stored app list does not parse as JSON
var ErrMalformed = errors.New("malformed app list")

// Field names of an app list element
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldHostUUID = "hostUUID"
	FieldHostName = "hostName"
)

// requiredFields are checked in this order when reporting a rejection
var requiredFields = []string{FieldID, FieldHostName, FieldHostUUID}

// Rejection describes an element that was skipped
type Rejection struct {
	Index   int      `json:"index"`
	Missing []string `json:"missing,omitempty"`
	Reason  string   `json:"reason"`
}

func (r Rejection) String() string {
	if len(r.Missing) > 0 {
		return fmt.Sprintf("entry %d: %s (%s)", r.Index, r.Reason, strings.Join(r.Missing, ", "))
	}
	return fmt.Sprintf("entry %d: %s", r.Index, r.Reason)
}

// Result holds the accepted entries in input order and the rejected ones.
// NotArray is set when the document was valid JSON of some other kind, in
// which case there are no entries.
type Result struct {
	Entries    []models.AppListEntry `json:"entries"`
	Rejections []Rejection           `json:"rejections"`
	NotArray   bool                  `json:"notArray,omitempty"`
}

// Decode parses the app list. A document that is not valid JSON fails as a
// whole with ErrMalformed. Valid JSON other than an array decodes to an empty
// Result with NotArray set. Elements that are not objects or lack a required
// string field are reported in Result.Rejections and skipped.
func Decode(data []byte) (*Result, error) {
	if !json.Valid(data) {
		var v interface{}
		err := json.Unmarshal(data, &v)
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '[' {
		return &Result{
			Entries:    []models.AppListEntry{},
			Rejections: []Rejection{},
			NotArray:   true,
		}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	res := &Result{
		Entries:    make([]models.AppListEntry, 0, len(raw)),
		Rejections: []Rejection{},
	}
	for i, elem := range raw {
		entry, rej := decodeEntry(elem)
		if rej != nil {
			rej.Index = i
			res.Rejections = append(res.Rejections, *rej)
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}

func decodeEntry(elem json.RawMessage) (models.AppListEntry, *Rejection) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return models.AppListEntry{}, &Rejection{Reason: "not an object"}
	}

	values := make(map[string]string, len(fields))
	var missing []string
	for _, name := range requiredFields {
		v, ok := stringField(fields, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		values[name] = v
	}
	if len(missing) > 0 {
		return models.AppListEntry{}, &Rejection{Missing: missing, Reason: "missing required fields"}
	}

	// A non-string name is treated like an absent one
	name, _ := stringField(fields, FieldName)

	return models.AppListEntry{
		ID:       values[FieldID],
		Name:     name,
		HostUUID: values[FieldHostUUID],
		HostName: values[FieldHostName],
	}, nil
}

// stringField reports whether name is present and holds a JSON string
func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
