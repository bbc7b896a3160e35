package handler

// ErrorBody is the error envelope of every failed request. Errors lists the
// messages of each invalid field.
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// errorBody aliases ErrorBody for the API docs.
type errorBody = ErrorBody
