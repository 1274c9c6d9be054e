package codec

import "strings"

const (
	boolTrue  = "TRUE"
	boolFalse = "FALSE"

	optionSeparator = ","
	optionJoiner    = ", "
)

// column binds a header name to the record field it carries.
type column struct {
	name   string
	decode func(rec *FieldRecord, cell string)
	encode func(rec FieldRecord) string
}

// columns is in canonical header order.
var columns = []column{
	{
		name:   "id",
		decode: func(rec *FieldRecord, cell string) { rec.ID = cell },
		encode: func(rec FieldRecord) string { return rec.ID },
	},
	{
		name:   "label",
		decode: func(rec *FieldRecord, cell string) { rec.Label = cell },
		encode: func(rec FieldRecord) string { return rec.Label },
	},
	{
		name:   "type",
		decode: func(rec *FieldRecord, cell string) { rec.Type = FieldType(cell) },
		encode: func(rec FieldRecord) string { return string(rec.Type) },
	},
	{
		name:   "required",
		decode: func(rec *FieldRecord, cell string) { rec.Required = cell == boolTrue },
		encode: func(rec FieldRecord) string {
			if rec.Required {
				return boolTrue
			}
			return boolFalse
		},
	},
	{
		name:   "options",
		decode: func(rec *FieldRecord, cell string) { rec.Options = splitOptions(cell) },
		encode: func(rec FieldRecord) string { return strings.Join(rec.Options, optionJoiner) },
	},
}

var columnsByName = func() map[string]column {
	m := make(map[string]column, len(columns))
	for _, c := range columns {
		m[c.name] = c
	}
	return m
}()

// Header returns the canonical header row written by Encode.
func Header() []string {
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.name
	}
	return header
}

// Decode converts a table into records. Row 0 is read as the header and every
// following row yields exactly one record. Unknown header names are ignored,
// cells missing from short rows read as empty, and record fields without a
// header column keep their zero value. Decode never fails.
func Decode(table Table) []FieldRecord {
	if len(table) == 0 {
		return []FieldRecord{}
	}

	header := table[0]
	records := make([]FieldRecord, 0, len(table)-1)
	for _, row := range table[1:] {
		var rec FieldRecord
		for i, name := range header {
			col, ok := columnsByName[name]
			if !ok {
				continue
			}
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			col.decode(&rec, cell)
		}
		records = append(records, rec)
	}

	return records
}

// Encode converts records into a table with the canonical header followed by
// one row per record, in input order.
func Encode(records []FieldRecord) Table {
	table := make(Table, 0, len(records)+1)
	table = append(table, Header())
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = c.encode(rec)
		}
		table = append(table, row)
	}
	return table
}

func splitOptions(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, optionSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
