package gridquery

import (
	"errors"
	"strings"
)

// Compose builds one predicate for a filter group.
//
// Each rule is resolved and built independently; a rule whose field does not
// resolve, whose operator is unknown, or whose literal does not convert is
// dropped and reported as a Diagnostic. The surviving predicates are joined
// left to right with AND when the combinator starts with "and" or "all"
// (case-insensitive), OR otherwise. An empty group, or a group where every
// rule was dropped, matches everything.
func (s *Schema[T]) Compose(group *FilterGroup) (Predicate[T], []Diagnostic) {
	if group == nil || len(group.Rules) == 0 {
		return MatchAll[T](), nil
	}

	var (
		preds []Predicate[T]
		diags []Diagnostic
	)
	for _, rule := range group.Rules {
		pred, err := s.BuildRule(rule)
		if err != nil {
			diags = append(diags, ruleDiagnostic(rule, err))
			continue
		}
		preds = append(preds, pred)
	}

	switch {
	case len(preds) == 0:
		return MatchAll[T](), diags
	case len(preds) == 1:
		return preds[0], diags
	case IsConjunction(group.Combinator):
		return allOf(preds), diags
	default:
		return anyOf(preds), diags
	}
}

// BuildRule resolves the rule's field and operator and builds its predicate.
func (s *Schema[T]) BuildRule(rule FilterRule) (Predicate[T], error) {
	f, err := s.Resolve(rule.Field)
	if err != nil {
		return nil, err
	}
	op, ok := ParseOperator(rule.Operator)
	if !ok {
		return nil, unsupportedOperator(f.Path, rule.Operator, f.Kind)
	}
	return BuildPredicate(f, op, rule.Data, s.cfg.location)
}

// IsConjunction reports whether a group combinator means AND: its first three
// characters, case-insensitively, are "and" or "all". Leading spaces count.
func IsConjunction(combinator string) bool {
	head := []rune(combinator)
	if len(head) > 3 {
		head = head[:3]
	}
	switch strings.ToLower(string(head)) {
	case "and", "all":
		return true
	}
	return false
}

func allOf[T any](preds []Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

func anyOf[T any](preds []Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p(item) {
				return true
			}
		}
		return false
	}
}

func ruleDiagnostic(rule FilterRule, err error) Diagnostic {
	var qe *Error
	if !errors.As(err, &qe) {
		qe = &Error{Code: ErrInternal, Message: err.Error()}
	}
	return Diagnostic{
		Stage:    StageFilter,
		Field:    rule.Field,
		Operator: rule.Operator,
		Err:      qe,
	}
}
