package applist

import (
	"errors"
	"testing"

	"github.com/koios/moonlight-shelf/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Valid(t *testing.T) {
	data := []byte(`[
		{"id": "1", "name": "Steam", "hostUUID": "u-a", "hostName": "A"},
		{"id": "2", "hostUUID": "u-b", "hostName": "B"}
	]`)

	res, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, res.NotArray)
	assert.Empty(t, res.Rejections)
	assert.Equal(t, []models.AppListEntry{
		{ID: "1", Name: "Steam", HostUUID: "u-a", HostName: "A"},
		{ID: "2", HostUUID: "u-b", HostName: "B"},
	}, res.Entries)
}

func TestDecode_EmptyArray(t *testing.T) {
	res, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Empty(t, res.Rejections)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `this is not json`},
		{"truncated", `[{"id": "1", "hostUUID": "u"`},
		{"empty", ``},
		{"trailing garbage", `[] x`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Decode([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "err = %v", err)
			assert.Nil(t, res)
		})
	}
}

func TestDecode_NonArrayIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{"id": "1"}`},
		{"string", `"str"`},
		{"number", `42`},
		{"null", `null`},
		{"padded null", "  null\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Decode([]byte(tc.data))
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.NotArray)
			assert.Empty(t, res.Entries)
			assert.Empty(t, res.Rejections)
		})
	}
}

func TestDecode_RejectsIncompleteEntries(t *testing.T) {
	data := []byte(`[
		{"id": "1", "hostName": "A"},
		{"name": "no id"},
		{"id": "3", "hostUUID": "u", "hostName": "A"},
		"a string",
		{"id": 4, "hostUUID": "u", "hostName": "A"},
		{"id": "5", "hostUUID": null, "hostName": "A"}
	]`)

	res, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "3", res.Entries[0].ID)

	want := []Rejection{
		{Index: 0, Missing: []string{FieldHostUUID}, Reason: "missing required fields"},
		{Index: 1, Missing: []string{FieldID, FieldHostName, FieldHostUUID}, Reason: "missing required fields"},
		{Index: 3, Reason: "not an object"},
		{Index: 4, Missing: []string{FieldID}, Reason: "missing required fields"},
		{Index: 5, Missing: []string{FieldHostUUID}, Reason: "missing required fields"},
	}
	assert.Equal(t, want, res.Rejections)
}

func TestDecode_NonStringNameIsTolerated(t *testing.T) {
	res, err := Decode([]byte(`[{"id": "1", "name": 7, "hostUUID": "u", "hostName": "A"}]`))
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "", res.Entries[0].Name)
}

func TestRejectionString(t *testing.T) {
	r := Rejection{Index: 2, Missing: []string{"id", "hostUUID"}, Reason: "missing required fields"}
	assert.Equal(t, "entry 2: missing required fields (id, hostUUID)", r.String())

	r = Rejection{Index: 0, Reason: "not an object"}
	assert.Equal(t, "entry 0: not an object", r.String())
}
