package codec

// FieldType is the input kind of a form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
	FieldTypeURL      FieldType = "url"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Known reports whether t is one of the recognised field types. Decoding keeps
// unrecognised values as-is, so callers use this for diagnostics only.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect,
		FieldTypeDate, FieldTypeURL, FieldTypeCheckbox:
		return true
	}
	return false
}

// FieldRecord describes one configurable input field.
type FieldRecord struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	// Options is nil when the field has no options.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Table is the row/column shape used by the external store. Row 0 is the
// header naming the columns.
type Table [][]string
