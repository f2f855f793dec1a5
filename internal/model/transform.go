package model

// MutationTag classifies a source line for the transformation engine.
type MutationTag string

const (
	// TagCritical marks a line that must never be altered or removed
	// (signatures, imports, closing brackets).
	TagCritical MutationTag = "critical"
	// TagInsertable marks a line after which new material may be inserted.
	TagInsertable MutationTag = "insertable"
	// TagDeletable marks a line that may be removed outright.
	TagDeletable MutationTag = "deletable"
)

// MutationPoint is a classified location eligible for a transformation
// operator. Line is a zero-based index into the split source.
type MutationPoint struct {
	Line int
	Tag  MutationTag
}

// OperatorKind identifies a transformation operator.
type OperatorKind string

const (
	// OpInsert appends a stylistic comment or no-op statement after a line.
	OpInsert OperatorKind = "insert"
	// OpDelete removes a deletable, non-critical line.
	OpDelete OperatorKind = "delete"
	// OpConditionalWrap wraps a simple statement in an always-true guard.
	OpConditionalWrap OperatorKind = "conditional_wrap"
	// OpValidationInsert adds a defensive no-op near the entry point.
	OpValidationInsert OperatorKind = "validation_insert"
)

// TransformationRecord logs one applied operator: which kind, where, and
// what text it introduced (empty for deletions).
type TransformationRecord struct {
	Kind    OperatorKind
	Line    int
	Payload string
}

// CloneResult is the total outcome of a generation call.
// Success == false implies Clone equals the original input verbatim.
type CloneResult struct {
	Clone        string
	Success      bool
	Applied      []TransformationRecord
	ErrorMessage string
}
