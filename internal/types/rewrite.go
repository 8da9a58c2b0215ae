// Package types provides the request, contract and result types shared by the rewriting
// pipeline, its CLI and its HTTP surface.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ContentType identifies which rewriting profile handles a request.
type ContentType string

// Content types with a dedicated generation profile.
const (
	ContentWorkBullet        ContentType = "work_bullet"
	ContentWorkProfile       ContentType = "work_profile"
	ContentConsultingSummary ContentType = "consulting_summary"
	ContentTechSummary       ContentType = "tech_summary"
	ContentBulletBatch       ContentType = "bullet_batch"
	ContentStructured        ContentType = "structured"
)

// ContentTypes lists the single-request content types in a stable order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentWorkBullet,
		ContentWorkProfile,
		ContentConsultingSummary,
		ContentTechSummary,
		ContentBulletBatch,
	}
}

// State is the terminal (or in-flight) state an orchestrated call ended in.
type State string

// Orchestrator states.
const (
	StateDisabled           State = "DISABLED"
	StateMissingCredential  State = "MISSING_CREDENTIAL"
	StateEmptyInput         State = "EMPTY_INPUT"
	StateRequesting         State = "REQUESTING"
	StateResponseError      State = "RESPONSE_ERROR"
	StateTransportException State = "TRANSPORT_EXCEPTION"
	StateParseFailure       State = "PARSE_FAILURE"
	StateSuccess            State = "SUCCESS"
)

// FormatContract holds the limits a rewritten result must satisfy. Zero fields mean "no bound"
// except where a profile supplies a default.
type FormatContract struct {
	MaxChars      int `json:"max_chars,omitempty" validate:"gte=0"`       // per line or per bullet
	MaxTotalChars int `json:"max_total_chars,omitempty" validate:"gte=0"` // whole multi-line text
	MinLines      int `json:"min_lines,omitempty" validate:"gte=0"`
	MaxLines      int `json:"max_lines,omitempty" validate:"gte=0"`
	BulletCount   int `json:"bullet_count,omitempty" validate:"gte=0"` // exact bullet count, 0 = any
}

// Merge returns c with zero fields filled from defaults.
func (c FormatContract) Merge(defaults FormatContract) FormatContract {
	result := c
	if result.MaxChars == 0 {
		result.MaxChars = defaults.MaxChars
	}
	if result.MaxTotalChars == 0 {
		result.MaxTotalChars = defaults.MaxTotalChars
	}
	if result.MinLines == 0 {
		result.MinLines = defaults.MinLines
	}
	if result.MaxLines == 0 {
		result.MaxLines = defaults.MaxLines
	}
	if result.BulletCount == 0 {
		result.BulletCount = defaults.BulletCount
	}
	return result
}

// Hints carry context for the generation prompt. All fields are optional.
type Hints struct {
	Role           string `json:"role,omitempty"`
	Company        string `json:"company,omitempty"`
	Track          string `json:"track,omitempty"`
	TargetRole     string `json:"target_role,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
}

// RewriteRequest asks for one or more fragments of a single content type to be rewritten.
// Multiple fragments are joined line by line; for bullet batches each fragment is one bullet.
type RewriteRequest struct {
	ContentType ContentType     `json:"content_type" validate:"required,oneof=work_bullet work_profile consulting_summary tech_summary bullet_batch"`
	Fragments   []string        `json:"fragments"`
	Hints       Hints           `json:"hints"`
	Contract    *FormatContract `json:"contract,omitempty"`
}

// Validate checks structural validity. Empty fragments are not a validation failure; the
// orchestrator reports them as EMPTY_INPUT.
func (r *RewriteRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Contract != nil && r.Contract.MaxLines > 0 && r.Contract.MinLines > r.Contract.MaxLines {
		return fmt.Errorf("contract min_lines (%d) exceeds max_lines (%d)", r.Contract.MinLines, r.Contract.MaxLines)
	}
	return nil
}

// LabeledField is one labeled value of a structured block, e.g. "Sectors: Retail, Energy".
type LabeledField struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value"`
}

// StructuredRequest asks for a summary plus labeled fields to be rewritten in one round trip.
type StructuredRequest struct {
	Summary         string         `json:"summary"`
	Fields          []LabeledField `json:"fields" validate:"dive"`
	Hints           Hints          `json:"hints"`
	SummaryMaxChars int            `json:"summary_max_chars,omitempty" validate:"gte=0"`
	FieldMaxChars   int            `json:"field_max_chars,omitempty" validate:"gte=0"`
}

// Validate checks structural validity of the request.
func (r *StructuredRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RewriteResult is returned by every orchestrated call. Text, Bullets and Summary/Fields are
// populated according to the content type and always satisfy its FormatContract.
type RewriteResult struct {
	OK          bool           `json:"ok"`
	ContentType ContentType    `json:"content_type"`
	State       State          `json:"state"`
	Text        string         `json:"text,omitempty"`
	Bullets     []string       `json:"bullets,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Fields      []LabeledField `json:"fields,omitempty"`
	Highlights  []string       `json:"highlights"`
	Error       string         `json:"error,omitempty"`
}
