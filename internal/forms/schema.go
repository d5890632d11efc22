package forms

// FieldKind selects the widget used for a field.
type FieldKind int

// Field kinds.
const (
	KindText FieldKind = iota
	KindTextArea
	// KindGroups accepts approver groups as "name=uuid" pairs separated by commas.
	KindGroups
)

// Field is one input of a form.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Required    bool
	MaxLength   int
	Placeholder string
}

// Schema is an ordered set of fields with a title.
type Schema struct {
	Title  string
	Fields []Field
}

// Field names shared by the schemas and the decoded structs.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldGroupRefs   = "group_refs"
)

// Field length limits.
const (
	maxNameLength        = 255
	maxPortfolioName     = 64
	maxDescriptionLength = 1024
)

// PortfolioSchema returns the add or edit portfolio form.
func PortfolioSchema(edit bool) Schema {
	title := "Add portfolio"
	if edit {
		title = "Edit portfolio"
	}
	return Schema{
		Title: title,
		Fields: []Field{
			{Name: FieldName, Label: "Name", Kind: KindText, Required: true, MaxLength: maxPortfolioName},
			{Name: FieldDescription, Label: "Description", Kind: KindTextArea, MaxLength: maxDescriptionLength},
		},
	}
}

// WorkflowSchema returns the add or edit approval process form.
func WorkflowSchema(edit bool) Schema {
	title := "Add approval process"
	if edit {
		title = "Edit approval process"
	}
	return Schema{
		Title: title,
		Fields: []Field{
			{Name: FieldName, Label: "Name", Kind: KindText, Required: true, MaxLength: maxNameLength},
			{Name: FieldDescription, Label: "Description", Kind: KindTextArea, MaxLength: maxDescriptionLength},
			{
				Name:        FieldGroupRefs,
				Label:       "Approver groups",
				Kind:        KindGroups,
				Placeholder: "Ops=3b8f...,Finance=9a1c...",
			},
		},
	}
}

// Names returns the field names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}
