package domain

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"cloneforge.dev/pkg/cloneforge/internal/domain/operators"
	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// Engine defaults, overridable per call through GenerateOptions and via
// configuration in the cmd layer.
const (
	DefaultMaxTransformations = 3
	DefaultMinCodeLength      = 3
	DefaultRetryBudget        = 8
)

// Generator produces a Type-3 clone from a single snippet. It is a pure
// function of its arguments: no hidden state, no I/O, and identical
// (code, lang, seed) always yields an identical CloneResult.
type Generator interface {
	Generate(code string, lang m.Language, opts GenerateOptions) m.CloneResult
}

// GenerateOptions tunes one generation call. Zero values take defaults.
type GenerateOptions struct {
	// Seed drives the per-call random generator. When nil the engine
	// derives one from a hash of the input, so unseeded calls are still
	// reproducible for identical input.
	Seed *int64
	// MaxTransformations caps the number of applied operators.
	MaxTransformations int
	// MinCodeLength is the minimum number of non-blank lines.
	MinCodeLength int
	// RetryBudget bounds how many rejected edits are tolerated before
	// the engine settles for what it has.
	RetryBudget int
	// MinRetention is the minimum ratio of clone to original non-blank
	// lines enforced by the validator.
	MinRetention float64
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.MaxTransformations <= 0 {
		o.MaxTransformations = DefaultMaxTransformations
	}

	if o.MinCodeLength <= 0 {
		o.MinCodeLength = DefaultMinCodeLength
	}

	if o.RetryBudget <= 0 {
		o.RetryBudget = DefaultRetryBudget
	}

	if o.MinRetention <= 0 || o.MinRetention > 1 {
		o.MinRetention = DefaultMinRetention
	}

	return o
}

type engine struct{}

// NewEngine creates the Type-3 transformation engine.
func NewEngine() Generator {
	return &engine{}
}

// operatorsByTag lists the operators applicable to a mutation point tag,
// in canonical order. The seeded generator permutes the order per point.
var operatorsByTag = map[m.MutationTag][]m.OperatorKind{
	m.TagInsertable: {m.OpInsert, m.OpConditionalWrap, m.OpValidationInsert},
	m.TagDeletable:  {m.OpDelete, m.OpConditionalWrap, m.OpInsert, m.OpValidationInsert},
}

// Generate applies 1..MaxTransformations operators to code. Every failure
// mode degrades to an identity fallback with Success=false; the method
// never panics and never returns an error.
//
// A fallback preserves the input byte for byte. A successful clone is
// always newline-terminated, even when the input was not: the snippet is
// rebuilt line by line and the final newline is normalized.
func (e *engine) Generate(code string, lang m.Language, opts GenerateOptions) m.CloneResult {
	opts = opts.withDefaults()

	if strings.TrimSpace(code) == "" {
		return fallback(code, "input is blank")
	}

	lines := SplitLines(code)
	if n := CountNonBlank(lines); n < opts.MinCodeLength {
		return fallback(code, fmt.Sprintf("input too short: %d non-blank lines, need %d", n, opts.MinCodeLength))
	}

	if !Balanced(code) {
		return fallback(code, "input has unbalanced brackets")
	}

	classifier := &Classifier{MinLines: opts.MinCodeLength, MinTokenLength: DefaultMinTokenLength}

	points := classifier.Classify(code, lang)

	candidates, critical, criticalIdx := partitionPoints(points, lines)
	if len(candidates) == 0 {
		return fallback(code, "no safe mutation point")
	}

	rng := rand.New(rand.NewSource(seedFor(code, lang, opts.Seed)))
	validator := NewValidator(opts.MinRetention)

	k := 1 + rng.Intn(opts.MaxTransformations)
	if k > len(candidates) {
		k = len(candidates)
	}

	state := newEditState(lines)
	budget := opts.RetryBudget

	// Distinct mutation points, drawn without replacement in a seeded
	// random order.
	for _, idx := range rng.Perm(len(candidates)) {
		if len(state.applied) >= k || budget <= 0 {
			break
		}

		budget = state.attemptPoint(candidates[idx], lang, code, critical, criticalIdx, validator, rng, budget)
	}

	if len(state.applied) == 0 {
		return fallback(code, "no transformation passed validation")
	}

	return m.CloneResult{
		Clone:   JoinLines(state.lines),
		Success: true,
		Applied: state.applied,
	}
}

func fallback(code, msg string) m.CloneResult {
	return m.CloneResult{Clone: code, Success: false, ErrorMessage: msg}
}

// seedFor resolves the effective seed: the explicit one when given,
// otherwise an FNV-1a hash of the language and code.
func seedFor(code string, lang m.Language, seed *int64) int64 {
	if seed != nil {
		return *seed
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(lang))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(code))

	return int64(h.Sum64())
}

// partitionPoints splits classification output into edit candidates and
// the verbatim text plus index set of critical lines.
func partitionPoints(points []m.MutationPoint, lines []string) ([]m.MutationPoint, []string, map[int]bool) {
	candidates := make([]m.MutationPoint, 0, len(points))
	critical := make([]string, 0)
	criticalIdx := make(map[int]bool)

	for _, pt := range points {
		if pt.Tag == m.TagCritical {
			critical = append(critical, lines[pt.Line])
			criticalIdx[pt.Line] = true

			continue
		}

		candidates = append(candidates, pt)
	}

	return candidates, critical, criticalIdx
}

// editState tracks the working copy of the snippet plus the mapping from
// original line indices to current positions as edits land.
type editState struct {
	lines   []string
	pos     []int
	applied []m.TransformationRecord
}

func newEditState(lines []string) *editState {
	pos := make([]int, len(lines))
	for i := range pos {
		pos[i] = i
	}

	return &editState{lines: append([]string(nil), lines...), pos: pos}
}

// attemptPoint tries the applicable operators for one mutation point in a
// seeded random order. Each rejected edit costs one unit of budget; the
// remaining budget is returned.
func (s *editState) attemptPoint(
	pt m.MutationPoint,
	lang m.Language,
	original string,
	critical []string,
	criticalIdx map[int]bool,
	validator *Validator,
	rng *rand.Rand,
	budget int,
) int {
	cur := s.pos[pt.Line]
	if cur < 0 {
		return budget
	}

	kinds := operatorsByTag[pt.Tag]

	for _, ki := range rng.Perm(len(kinds)) {
		kind := kinds[ki]

		res, ok := s.applyOperator(kind, cur, lang, criticalIdx, rng)
		if !ok {
			continue
		}

		if err := validator.Check(original, JoinLines(res.Lines), critical); err != nil {
			budget--
			if budget <= 0 {
				return 0
			}

			continue
		}

		s.accept(kind, pt.Line, cur, res)

		return budget
	}

	return budget
}

func (s *editState) applyOperator(kind m.OperatorKind, cur int, lang m.Language, criticalIdx map[int]bool, rng *rand.Rand) (operators.Result, bool) {
	switch kind {
	case m.OpInsert:
		return operators.Insert(s.lines, cur, lang, rng.Intn)
	case m.OpDelete:
		return operators.Delete(s.lines, cur)
	case m.OpConditionalWrap:
		return operators.ConditionalWrap(s.lines, cur, lang)
	case m.OpValidationInsert:
		return operators.ValidationInsert(s.lines, lang, s.isOriginallyCritical(criticalIdx), rng.Intn)
	}

	return operators.Result{}, false
}

// isOriginallyCritical adapts the original-index critical set to current
// positions so the entry-point search skips still-present critical lines.
func (s *editState) isOriginallyCritical(criticalIdx map[int]bool) func(int) bool {
	return func(cur int) bool {
		for orig, p := range s.pos {
			if p == cur {
				return criticalIdx[orig]
			}
		}

		return false
	}
}

// accept commits an edit and shifts the original→current index mapping.
func (s *editState) accept(kind m.OperatorKind, origLine, cur int, res operators.Result) {
	s.lines = res.Lines
	s.applied = append(s.applied, m.TransformationRecord{Kind: kind, Line: origLine, Payload: res.Payload})

	switch kind {
	case m.OpInsert:
		s.shift(cur+1, 1)
	case m.OpDelete:
		s.pos[origLine] = -1
		s.shift(cur+1, -1)
	case m.OpConditionalWrap:
		// Guard line lands at cur, statement moves to cur+1.
		s.shift(cur, 1)
	case m.OpValidationInsert:
		s.shift(res.At, 1)
	}
}

// shift moves every current position >= from by delta.
func (s *editState) shift(from, delta int) {
	for i, p := range s.pos {
		if p >= from {
			s.pos[i] = p + delta
		}
	}
}
