package domain

import (
	"net/url"
	"strings"
)

// Encoding selects how create/update bodies are sent.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingMultipart
)

// UpdateVerb selects how an update travels over the wire.
type UpdateVerb int

const (
	// UpdatePut issues a native PUT.
	UpdatePut UpdateVerb = iota
	// UpdateMethodOverride issues a POST carrying MethodOverrideField=PUT,
	// for servers that only parse multipart bodies on POST.
	UpdateMethodOverride
)

// MethodOverrideField is the form field carrying the logical verb.
const MethodOverrideField = "_method"

// DefaultFailureMessage is shown when the server gives no usable message.
const DefaultFailureMessage = "Failed to submit form"

// Field is one input of a resource form.
type Field struct {
	Name  string
	Label string
}

// Messages are the notification texts of a resource.
type Messages struct {
	Created      string
	Updated      string
	Deleted      string
	DeleteFailed string
}

// Resource describes a managed collection: where it lives, how it is keyed,
// and what its forms look like.
type Resource struct {
	Name     string
	Singular string
	IDField  string

	// Subject is the authorization subject guarding the resource page.
	Subject string

	// CreatePath is the path create requests go to. Some collections expect a
	// trailing slash.
	CreatePath string

	CreateFields []Field
	UpdateFields []Field

	Encoding   Encoding
	UpdateVerb UpdateVerb

	// AttachmentField names the optional file input; empty when the resource
	// takes no attachment.
	AttachmentField string

	Messages Messages
}

// ListPath is the collection path relative to the API base.
func (r Resource) ListPath() string {
	return r.Name
}

// ItemPath is the path of a single row.
func (r Resource) ItemPath(id string) string {
	return strings.TrimSuffix(r.Name, "/") + "/" + url.PathEscape(id)
}

// Fields returns the inputs of the form in the given mode.
func (r Resource) Fields(mode FormMode) []Field {
	if mode == FormEdit {
		return r.UpdateFields
	}
	return r.CreateFields
}

// Resources lists every managed collection in menu order.
func Resources() []Resource {
	return []Resource{UsersResource, ProductsResource}
}

// ResourceByName finds a collection by its path segment.
func ResourceByName(name string) (Resource, bool) {
	for _, r := range Resources() {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
