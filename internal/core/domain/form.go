package domain

// FormMode distinguishes an add form from an edit form.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

func (m FormMode) String() string {
	if m == FormEdit {
		return "edit"
	}
	return "create"
}

// FormState is the lifecycle state of a create/edit form.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormOpen:
		return "open"
	case FormSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// RequiredFieldMessage is attached to every empty field on submit.
const RequiredFieldMessage = "This field is required"

// Attachment is a binary file sent alongside a multipart payload.
type Attachment struct {
	Field    string
	FileName string
	Content  []byte
}

// Payload is the body of a create or update call.
type Payload struct {
	Fields     map[string]string
	Attachment *Attachment
}

// FormDraft holds the candidate values of an open form and the errors found
// on the last submit attempt.
type FormDraft struct {
	Mode       FormMode
	TargetID   string
	Values     map[string]string
	Errors     map[string]string
	Attachment *Attachment
}

// Payload builds the request body from the draft, restricted to fields.
func (d FormDraft) Payload(fields []Field) Payload {
	p := Payload{Fields: make(map[string]string, len(fields))}
	for _, f := range fields {
		p.Fields[f.Name] = d.Values[f.Name]
	}
	if d.Attachment != nil {
		att := *d.Attachment
		p.Attachment = &att
	}
	return p
}
