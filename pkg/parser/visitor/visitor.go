// Package visitor walks a syntax tree and collects test declarations.
//
// The walker depends only on the Node capability interface, so any syntax
// tree representation can be plugged in by an adapter. Framework conventions
// are supplied as a Dialect.
package visitor

import (
	"strings"

	"github.com/specvital/testdiff/pkg/domain"
)

// ArgKind classifies the first argument of a call.
type ArgKind int

const (
	// ArgMissing means the call has no arguments.
	ArgMissing ArgKind = iota
	// ArgLiteral means the argument is a string or template literal.
	ArgLiteral
	// ArgDynamic means the argument cannot be resolved without execution.
	ArgDynamic
)

// Node is the capability set the walker needs from a syntax tree.
type Node interface {
	// Call returns the call-like construct rooted at this node, if any.
	Call() (*Call, bool)
	// Children returns the child nodes in source order.
	Children() []Node
}

// Tree is a parsed source file. Close releases resources held by the parser.
type Tree interface {
	Root() Node
	Close()
}

// Call describes a call-like construct.
type Call struct {
	// Body is the body of the attached function literal, nil if none.
	Body Node
	// Callee is the base identifier followed by member qualifiers,
	// e.g. ["it", "skip"] for it.skip or ["xdescribe"].
	Callee []string
	// Name is the resolved first argument when NameKind is ArgLiteral.
	Name     string
	NameKind ArgKind
}

// Role is what a resolved callee declares.
type Role int

const (
	RoleNone Role = iota
	RoleGroup
	RoleLeaf
)

// Dialect describes the declaration vocabulary of one authoring style.
type Dialect struct {
	// Groups holds grouping identifiers (describe, Feature).
	Groups map[string]bool
	// Leaves holds leaf-test identifiers (it, Scenario).
	Leaves map[string]bool
	// SkipQualifiers disable the declaration (skip).
	SkipQualifiers map[string]bool
	// FocusQualifiers mark the declaration focused (only).
	FocusQualifiers map[string]bool
	// NeutralQualifiers are accepted without changing state (each).
	NeutralQualifiers map[string]bool
	// SkipPrefix disables an identifier it prefixes (xit, xdescribe). Empty disables the form.
	SkipPrefix string
	// FlatGroups makes a grouping call scope the rest of the file instead of a callback body.
	FlatGroups bool
}

// Resolve maps a callee to its role and declared status.
func (d Dialect) Resolve(callee []string) (Role, domain.TestStatus) {
	if len(callee) == 0 {
		return RoleNone, domain.TestStatusActive
	}

	base := callee[0]
	status := domain.TestStatusActive
	role := d.role(base)
	if role == RoleNone && d.SkipPrefix != "" && strings.HasPrefix(base, d.SkipPrefix) {
		role = d.role(strings.TrimPrefix(base, d.SkipPrefix))
		status = domain.TestStatusSkipped
	}
	if role == RoleNone {
		return RoleNone, domain.TestStatusActive
	}

	for _, q := range callee[1:] {
		switch {
		case d.SkipQualifiers[q]:
			status = domain.TestStatusSkipped
		case d.FocusQualifiers[q]:
			if status != domain.TestStatusSkipped {
				status = domain.TestStatusFocused
			}
		case d.NeutralQualifiers[q]:
		default:
			return RoleNone, domain.TestStatusActive
		}
	}

	return role, status
}

func (d Dialect) role(name string) Role {
	switch {
	case d.Groups[name]:
		return RoleGroup
	case d.Leaves[name]:
		return RoleLeaf
	default:
		return RoleNone
	}
}

type workItem struct {
	node Node
	pop  bool
}

// Visit walks root depth-first and returns the test records in declaration order.
// The suite stack and the pending work are explicit slices, so nesting depth
// is bounded by memory rather than the goroutine stack.
func Visit(root Node, d Dialect) []domain.TestRecord {
	if root == nil {
		return nil
	}

	var (
		records []domain.TestRecord
		frames  []domain.SuiteFrame
		work    = []workItem{{node: root}}
	)

	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]

		if item.pop {
			frames = frames[:len(frames)-1]
			continue
		}

		if call, ok := item.node.Call(); ok && call.NameKind != ArgMissing {
			role, status := d.Resolve(call.Callee)
			switch role {
			case RoleGroup:
				frame := domain.SuiteFrame{
					Name:    resolveName(call),
					Skipped: status == domain.TestStatusSkipped,
				}
				if d.FlatGroups {
					frames = append(frames[:0], frame)
					continue
				}
				if call.Body == nil {
					continue
				}
				frames = append(frames, frame)
				work = append(work, workItem{pop: true}, workItem{node: call.Body})
				continue
			case RoleLeaf:
				records = append(records, newRecord(call, status, frames))
				continue
			}
		}

		children := item.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			work = append(work, workItem{node: children[i]})
		}
	}

	return records
}

func newRecord(call *Call, status domain.TestStatus, frames []domain.SuiteFrame) domain.TestRecord {
	skipped := status == domain.TestStatusSkipped
	suites := append([]domain.SuiteFrame(nil), frames...)
	for _, f := range frames {
		skipped = skipped || f.Skipped
	}

	return domain.TestRecord{
		Name:    resolveName(call),
		Skipped: skipped,
		Status:  status,
		Suites:  suites,
	}
}

func resolveName(call *Call) string {
	if call.NameKind == ArgLiteral {
		return call.Name
	}
	return domain.DynamicNamePlaceholder
}
