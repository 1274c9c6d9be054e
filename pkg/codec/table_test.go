package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_HeaderOnly(t *testing.T) {
	table := Encode(nil)
	assert.Equal(t, Table{{"id", "label", "type", "required", "options"}}, table)

	table = Encode([]FieldRecord{})
	assert.Equal(t, Table{{"id", "label", "type", "required", "options"}}, table)
}

func TestEncode_Rows(t *testing.T) {
	records := []FieldRecord{
		{ID: "f2", Label: "Bio", Type: FieldTypeTextarea, Required: false, Options: []string{"a", "b"}},
		{ID: "f1", Label: "Name", Type: FieldTypeText, Required: true},
		{ID: "f3", Label: "Mood", Type: "emoji", Options: []string{}},
	}

	table := Encode(records)
	require.Len(t, table, 4)
	assert.Equal(t, []string{"f2", "Bio", "textarea", "FALSE", "a, b"}, table[1])
	assert.Equal(t, []string{"f1", "Name", "text", "TRUE", ""}, table[2])
	assert.Equal(t, []string{"f3", "Mood", "emoji", "FALSE", ""}, table[3])
}

func TestHeader_ReturnsCopy(t *testing.T) {
	h := Header()
	h[0] = "changed"
	assert.Equal(t, "id", Header()[0])
}

func TestDecode_Empty(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		records := Decode(nil)
		require.NotNil(t, records)
		assert.Empty(t, records)

		records = Decode(Table{})
		require.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("header only", func(t *testing.T) {
		records := Decode(Table{Header()})
		require.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestDecode_Required(t *testing.T) {
	testCases := []struct {
		cell string
		want bool
	}{
		{"TRUE", true},
		{"FALSE", false},
		{"", false},
		{"yes", false},
		{"true", false},
		{" TRUE", false},
	}

	for _, tc := range testCases {
		t.Run(tc.cell, func(t *testing.T) {
			records := Decode(Table{{"required"}, {tc.cell}})
			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].Required)
		})
	}
}

func TestDecode_Options(t *testing.T) {
	testCases := []struct {
		name string
		cell string
		want []string
	}{
		{name: "trimmed", cell: "a, b ,c", want: []string{"a", "b", "c"}},
		{name: "single", cell: "only", want: []string{"only"}},
		{name: "empty cell", cell: "", want: nil},
		{name: "empty piece kept", cell: "a,,b", want: []string{"a", "", "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := Decode(Table{{"id", "options"}, {"x", tc.cell}})
			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].Options)
		})
	}
}

func TestDecode_HeaderByName(t *testing.T) {
	table := Table{
		{"notes", "options", "required", "type", "label", "id"},
		{"ignored", "x,y", "TRUE", "select", "Pick", "f9"},
	}

	records := Decode(table)
	require.Len(t, records, 1)
	assert.Equal(t, FieldRecord{
		ID:       "f9",
		Label:    "Pick",
		Type:     FieldTypeSelect,
		Required: true,
		Options:  []string{"x", "y"},
	}, records[0])
}

func TestDecode_MissingColumns(t *testing.T) {
	records := Decode(Table{
		{"id", "label", "type", "required"},
		{"f1", "Name", "text", "TRUE"},
	})

	require.Len(t, records, 1)
	assert.Equal(t, FieldRecord{ID: "f1", Label: "Name", Type: FieldTypeText, Required: true}, records[0])
	assert.Nil(t, records[0].Options)
}

func TestDecode_ShortRows(t *testing.T) {
	records := Decode(Table{
		Header(),
		{"f1", "Name"},
		{},
	})

	require.Len(t, records, 2)
	assert.Equal(t, FieldRecord{ID: "f1", Label: "Name"}, records[0])
	assert.Equal(t, FieldRecord{}, records[1])
}

func TestDecode_DuplicateHeaderLastWins(t *testing.T) {
	records := Decode(Table{
		{"label", "id", "label"},
		{"first", "f1", "second"},
	})

	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Label)
}

func TestDecode_UnknownTypePreserved(t *testing.T) {
	records := Decode(Table{{"type"}, {"color"}})
	require.Len(t, records, 1)
	assert.Equal(t, FieldType("color"), records[0].Type)
	assert.False(t, records[0].Type.Known())
}

func TestDecode_LongRowsIgnoreExtraCells(t *testing.T) {
	records := Decode(Table{
		{"id"},
		{"f1", "stray", "cells"},
	})

	require.Len(t, records, 1)
	assert.Equal(t, FieldRecord{ID: "f1"}, records[0])
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		records []FieldRecord
	}{
		{name: "empty", records: []FieldRecord{}},
		{
			name: "mixed",
			records: []FieldRecord{
				{ID: "name", Label: "Full name", Type: FieldTypeText, Required: true},
				{ID: "bio", Label: "Bio", Type: FieldTypeTextarea},
				{ID: "size", Label: "Size", Type: FieldTypeSelect, Required: true, Options: []string{"S", "M", "L"}},
				{ID: "dob", Label: "Birthday", Type: FieldTypeDate},
				{ID: "site", Label: "Website", Type: FieldTypeURL},
				{ID: "tos", Label: "Accept terms", Type: FieldTypeCheckbox, Required: true},
			},
		},
		{
			name: "empty strings",
			records: []FieldRecord{
				{},
				{ID: "", Label: "", Type: ""},
			},
		},
		{
			name: "unicode",
			records: []FieldRecord{
				{ID: "café", Label: "Café ☕", Type: FieldTypeSelect, Options: []string{"crème", "brûlée"}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table := Encode(tc.records)
			decoded := Decode(table)
			assert.Equal(t, tc.records, decoded)

			// re-encoding a decoded table is stable
			assert.Equal(t, table, Encode(decoded))
		})
	}
}

func TestFieldType_Known(t *testing.T) {
	for _, ft := range []FieldType{
		FieldTypeText, FieldTypeTextarea, FieldTypeSelect,
		FieldTypeDate, FieldTypeURL, FieldTypeCheckbox,
	} {
		assert.True(t, ft.Known(), ft)
	}
	assert.False(t, FieldType("").Known())
	assert.False(t, FieldType("Text").Known())
}
