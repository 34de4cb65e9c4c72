package api

// Submission is the result of validating one submitted form.
type Submission struct {
	Form   string              `json:"form"`
	Valid  bool                `json:"valid"`
	Lang   string              `json:"lang"`
	Values map[string][]string `json:"values"`
	Errors []FieldError        `json:"errors"`
}

// FieldError is a failed field with its message rendered.
type FieldError struct {
	Key      string `json:"key"`
	Group    string `json:"group"`
	Instance string `json:"instance,omitempty"`
	Field    string `json:"field"`
	ID       string `json:"id,omitempty"`
	Message  string `json:"message,omitempty"`
}
