package interp

import (
	"bytes"
	"io"
	"os/exec"
	"strings"

	"github.com/suji-lang/suji/internal/ast"
	"github.com/suji-lang/suji/internal/value"
)

// evalShellTemplate assembles a shell-command template's parts into a
// command string, then executes it as a standalone child process (spec
// §4.4). Standalone here means not part of a `|` stream-pipe expression,
// which wires neighboring stages instead (pipe.go).
func (i *Interp) evalShellTemplate(e *ast.ShellCommandTemplate, env *value.Env) (value.Value, error) {
	cmdStr, err := i.assembleTemplate(e.Parts, env)
	if err != nil {
		return nil, err
	}
	out, err := i.runShellCommand(cmdStr, i.stdin)
	if err != nil {
		return nil, value.NewError(value.ShellError, "%v", err).WithSpan(e.Span())
	}
	return value.String(out), nil
}

// assembleTemplate evaluates and stringifies a shell/string template's
// parts into the literal command text (spec §4.1 "Interpolation", §4.4).
func (i *Interp) assembleTemplate(parts []ast.StringPart, env *value.Env) (string, error) {
	var sb strings.Builder
	for _, part := range parts {
		if part.Expr == nil {
			sb.WriteString(part.Text)
			continue
		}
		v, err := i.evalExpr(part.Expr, env)
		if err != nil {
			return "", err
		}
		sb.WriteString(stringify(v))
	}
	return sb.String(), nil
}

// runShellCommand executes cmdStr via a POSIX shell, capturing stdout with
// its trailing newline stripped. Non-zero exit is a runtime error (spec
// §4.4).
func (i *Interp) runShellCommand(cmdStr string, stdin io.Reader) (string, error) {
	cmd := exec.Command("sh", "-c", cmdStr)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		if errBuf.Len() > 0 {
			return "", &shellError{cmdStr, err, errBuf.String()}
		}
		return "", &shellError{cmdStr, err, ""}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

type shellError struct {
	cmd    string
	cause  error
	stderr string
}

func (e *shellError) Error() string {
	if e.stderr != "" {
		return "command `" + e.cmd + "` failed: " + e.cause.Error() + ": " + strings.TrimSpace(e.stderr)
	}
	return "command `" + e.cmd + "` failed: " + e.cause.Error()
}
