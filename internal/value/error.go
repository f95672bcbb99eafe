package value

import (
	"fmt"

	"github.com/suji-lang/suji/internal/span"
)

// ErrorKind tags the runtime-error family from spec §7. ControlFlow never
// reaches a user-visible error path; loops intercept Break/Continue and
// calls intercept Return (spec §4.3).
type ErrorKind int

const (
	TypeError ErrorKind = iota
	UndefinedVariable
	InvalidOperation
	IndexOutOfBounds
	KeyNotFound
	InvalidKeyType
	ShellError
	RegexError
	ArityMismatch
	MethodError
	InvalidNumberConversion
	StreamError
	ControlFlow
	JSONParseError
	JSONGenerateError
	YAMLParseError
	YAMLGenerateError
	TOMLParseError
	TOMLGenerateError
)

var kindNames = map[ErrorKind]string{
	TypeError:               "TypeError",
	UndefinedVariable:       "UndefinedVariable",
	InvalidOperation:        "InvalidOperation",
	IndexOutOfBounds:        "IndexOutOfBounds",
	KeyNotFound:             "KeyNotFound",
	InvalidKeyType:          "InvalidKeyType",
	ShellError:              "ShellError",
	RegexError:              "RegexError",
	ArityMismatch:           "ArityMismatch",
	MethodError:             "MethodError",
	InvalidNumberConversion: "InvalidNumberConversion",
	StreamError:             "StreamError",
	ControlFlow:             "ControlFlow",
	JSONParseError:          "JsonParseError",
	JSONGenerateError:       "JsonGenerateError",
	YAMLParseError:          "YamlParseError",
	YAMLGenerateError:       "YamlGenerateError",
	TOMLParseError:          "TomlParseError",
	TOMLGenerateError:       "TomlGenerateError",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "RuntimeError"
}

// ControlFlowKind distinguishes the three signals that ride the
// RuntimeError channel without being real errors.
type ControlFlowKind int

const (
	FlowBreak ControlFlowKind = iota
	FlowContinue
	FlowReturn
)

// RuntimeError is the single error type the evaluator raises and
// propagates. Span is the zero value until a statement boundary attaches
// one as a last resort (spec §7 "every statement evaluation attaches its
// own span to errors that lack one").
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Span    span.Span

	// Fields used only when Kind == ControlFlow.
	Flow    ControlFlowKind
	Label   string // "" for unlabeled break/continue
	Returns *Tuple // return values, wrapped even for a single value
}

func (e *RuntimeError) Error() string {
	if e.Kind == ControlFlow {
		switch e.Flow {
		case FlowBreak:
			return "unhandled break"
		case FlowContinue:
			return "unhandled continue"
		default:
			return "unhandled return"
		}
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a plain runtime error of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithSpan attaches a span to an error that doesn't already carry one,
// implementing the "last resort" attachment policy from spec §7.
func (e *RuntimeError) WithSpan(s span.Span) *RuntimeError {
	if !e.Span.IsZero() {
		return e
	}
	cp := *e
	cp.Span = s
	return &cp
}

// NewBreak builds the ControlFlow signal for a `break` statement.
func NewBreak(label string) *RuntimeError {
	return &RuntimeError{Kind: ControlFlow, Flow: FlowBreak, Label: label}
}

// NewContinue builds the ControlFlow signal for a `continue` statement.
func NewContinue(label string) *RuntimeError {
	return &RuntimeError{Kind: ControlFlow, Flow: FlowContinue, Label: label}
}

// NewReturn builds the ControlFlow signal for a `return` statement. values
// is always wrapped in a Tuple, even for the single-value case, so call
// sites have one shape to unwrap.
func NewReturn(values []Value) *RuntimeError {
	return &RuntimeError{Kind: ControlFlow, Flow: FlowReturn, Returns: NewTuple(values)}
}

// AsControlFlow reports whether err is a RuntimeError carrying a
// ControlFlow signal, returning it typed for the caller to inspect.
func AsControlFlow(err error) (*RuntimeError, bool) {
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ControlFlow {
		return nil, false
	}
	return re, true
}
