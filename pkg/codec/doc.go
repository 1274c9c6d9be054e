// Package codec maps form field definitions to and from the tabular shape
// stored in a spreadsheet.
//
// # Table Format
//
// A table is a list of rows of string cells. Row 0 is the header; every other
// row is one field. Encode always writes the canonical header:
//
//	id | label | type | required | options
//
// Decode accepts any header order and looks columns up by name, so a sheet
// edited by hand may reorder columns or carry extra annotation columns.
//
// Cells:
//   - id, label, type: copied verbatim. Unrecognised types are preserved.
//   - required: "TRUE" decodes to true, anything else to false.
//   - options: one cell, comma separated. Decode trims each option; an empty
//     cell decodes to nil. Encode joins with ", ".
//
// # Usage
//
//	table := codec.Encode(records)
//	records := codec.Decode(table)
//
// Decode never fails: missing or malformed cells degrade to empty values and
// every data row produces exactly one record.
//
// # Round Trip
//
// For records whose options contain no commas and no surrounding whitespace,
// Decode(Encode(records)) returns records unchanged. An empty options list
// comes back as nil.
package codec
