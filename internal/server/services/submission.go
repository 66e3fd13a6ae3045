package services

import (
	"encoding/json"
	"io"
)

// Submission is a decoded login request.
type Submission struct {
	Identifier string
	Secret     string
}

// Valid reports whether both fields are present.
func (s Submission) Valid() bool {
	return s.Identifier != "" && s.Secret != ""
}

type submissionBody struct {
	ID *string `json:"id"`
	PW *string `json:"pw"`
}

// DecodeSubmission reads a single JSON object with string fields "id" and
// "pw". Anything else (bad JSON, another top-level type, non-string or missing
// fields, trailing data) yields ok == false. Empty strings decode fine and are
// rejected later by Valid.
func DecodeSubmission(r io.Reader) (Submission, bool) {
	dec := json.NewDecoder(r)

	var body submissionBody
	if err := dec.Decode(&body); err != nil {
		return Submission{}, false
	}
	if body.ID == nil || body.PW == nil {
		return Submission{}, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return Submission{}, false
	}

	return Submission{Identifier: *body.ID, Secret: *body.PW}, true
}
