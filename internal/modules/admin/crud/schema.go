package crud

import "context"

// FieldKind selects the form control rendered for a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindDecimal  FieldKind = "decimal"
	KindSelect   FieldKind = "select"
	KindURL      FieldKind = "url"
)

// Option is a select choice (e.g. a category).
type Option struct {
	Value string
	Label string
}

// Field describes one editable attribute of a resource.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// Options supplies select choices at render time; nil for other kinds.
	Options func(ctx context.Context) []Option
}

// Item is one row of a resource list plus the values an edit form needs.
// Cells align with the Resource's Columns.
type Item struct {
	ID        int
	Cells     []string
	Values    map[string]string
	ImageURLs []string
}

// Resource binds a backend resource to the generic CRUD controller. The
// controller never sees concrete record types; the closures translate
// between form values and facade payloads.
type Resource struct {
	Name      string // URL segment and template key, plural
	Title     string
	Fields    []Field
	Columns   []string // list table headers
	MaxImages int      // 0 = no image slots

	List        func(ctx context.Context) ([]Item, error)
	Create      func(ctx context.Context, values map[string]string, images []string) error
	Update      func(ctx context.Context, id int, values map[string]string, images []string) error
	Delete      func(ctx context.Context, id int) error
	Refresh     func(ctx context.Context)
	RemoveLocal func(id int)
}

// UserError is a validation failure shown to the user verbatim; everything
// else is reported as a generic failure and logged.
type UserError struct{ Msg string }

func (e *UserError) Error() string { return e.Msg }

// Invalid creates a UserError.
func Invalid(msg string) error { return &UserError{Msg: msg} }
