package jwk

import (
	"github.com/josekit/jose/pkg/jwa"
	"golang.org/x/exp/slices"
)

// Matcher matches keys against a conjunction of criteria. A criterion
// that was never set is absent and matches every key. Set-valued
// criteria may include their zero value to match keys that lack the
// attribute entirely, such as a key with no "use" member.
type Matcher struct {
	keyTypes   []jwa.KeyType
	uses       []Use
	operations []KeyOperation
	algorithms []jwa.Algorithm
	keyIDs     []string
	curves     []jwa.Curve

	privateOnly bool
	publicOnly  bool

	minSize int
	maxSize int
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithKeyTypes matches keys whose "kty" is one of the given types.
func WithKeyTypes(types ...jwa.KeyType) MatcherOption {
	return func(m *Matcher) {
		m.keyTypes = append(m.keyTypes, types...)
	}
}

// WithUses matches keys whose "use" is one of the given values.
// Include UseUnspecified to also match keys without a "use" member.
func WithUses(uses ...Use) MatcherOption {
	return func(m *Matcher) {
		m.uses = append(m.uses, uses...)
	}
}

// WithOperations matches keys whose "key_ops" contains at least one of
// the given operations. Include OpUnspecified to also match keys
// without a "key_ops" member.
func WithOperations(ops ...KeyOperation) MatcherOption {
	return func(m *Matcher) {
		m.operations = append(m.operations, ops...)
	}
}

// WithAlgorithms matches keys whose "alg" is one of the given
// algorithms. Include the zero algorithm to also match keys without
// an "alg" member.
func WithAlgorithms(algs ...jwa.Algorithm) MatcherOption {
	return func(m *Matcher) {
		m.algorithms = append(m.algorithms, algs...)
	}
}

// WithKeyIDs matches keys whose "kid" is one of the given values.
func WithKeyIDs(kids ...string) MatcherOption {
	return func(m *Matcher) {
		m.keyIDs = append(m.keyIDs, kids...)
	}
}

// WithCurves matches EC keys whose "crv" is one of the given curves.
// Keys of other types never match this criterion.
func WithCurves(curves ...jwa.Curve) MatcherOption {
	return func(m *Matcher) {
		m.curves = append(m.curves, curves...)
	}
}

// PrivateOnly matches only keys carrying private material.
func PrivateOnly() MatcherOption {
	return func(m *Matcher) {
		m.privateOnly = true
	}
}

// PublicOnly matches only keys without private material.
func PublicOnly() MatcherOption {
	return func(m *Matcher) {
		m.publicOnly = true
	}
}

// WithMinSize matches keys of at least the given size in bits.
func WithMinSize(bits int) MatcherOption {
	return func(m *Matcher) {
		m.minSize = bits
	}
}

// WithMaxSize matches keys of at most the given size in bits.
func WithMaxSize(bits int) MatcherOption {
	return func(m *Matcher) {
		m.maxSize = bits
	}
}

// NewMatcher returns a matcher combining the given criteria. A matcher
// with no options matches every key.
func NewMatcher(options ...MatcherOption) *Matcher {
	m := &Matcher{}
	for _, option := range options {
		option(m)
	}
	return m
}

// Matches reports whether the key satisfies every criterion.
func (m *Matcher) Matches(key Key) bool {
	// Demanding both private and public material is unsatisfiable.
	if m.privateOnly && m.publicOnly {
		return false
	}
	if m.privateOnly && !key.IsPrivate() {
		return false
	}
	if m.publicOnly && key.IsPrivate() {
		return false
	}

	if m.keyTypes != nil && !slices.ContainsFunc(m.keyTypes, key.KeyType().Equal) {
		return false
	}
	if m.uses != nil && !slices.Contains(m.uses, key.Use()) {
		return false
	}
	if m.operations != nil && !m.matchesOperations(key.Operations()) {
		return false
	}
	if m.algorithms != nil && !m.matchesAlgorithm(key.Algorithm()) {
		return false
	}
	if m.keyIDs != nil && !slices.Contains(m.keyIDs, key.KeyID()) {
		return false
	}
	if m.curves != nil && !m.matchesCurve(key) {
		return false
	}

	if m.minSize > 0 && key.Size() < m.minSize {
		return false
	}
	if m.maxSize > 0 && key.Size() > m.maxSize {
		return false
	}

	return true
}

func (m *Matcher) matchesOperations(ops []KeyOperation) bool {
	if len(ops) == 0 {
		return slices.Contains(m.operations, OpUnspecified)
	}
	for _, op := range ops {
		if slices.Contains(m.operations, op) {
			return true
		}
	}
	return false
}

func (m *Matcher) matchesAlgorithm(alg jwa.Algorithm) bool {
	if alg.IsZero() {
		return slices.ContainsFunc(m.algorithms, jwa.Algorithm.IsZero)
	}
	return slices.ContainsFunc(m.algorithms, alg.Equal)
}

func (m *Matcher) matchesCurve(key Key) bool {
	ec, ok := key.(*ECKey)
	if !ok {
		return false
	}
	return slices.ContainsFunc(m.curves, ec.Curve().Equal)
}

// Select returns the keys in the set matching every criterion,
// preserving set order. No match is an empty result, not an error.
func (m *Matcher) Select(set *Set) []Key {
	selected := []Key{}
	for _, key := range set.keys {
		if m.Matches(key) {
			selected = append(selected, key)
		}
	}
	return selected
}
