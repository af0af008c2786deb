// Package record encodes intercepted build-tool invocations as single-line
// log records. One record per process launch: working directory, resolved
// executable path, and the original argument vector, joined by "||" and
// terminated by a newline.
package record

import "strings"

// Delimiter separates fields within a record.
const Delimiter = "||"

// Record is one intercepted invocation, built immediately before encoding
// and discarded once the encoded line is written.
type Record struct {
	CWD  string   // working directory at interception time
	Path string   // resolved path of the invoked executable
	Args []string // original argument vector, may be empty
}

// EscapeArg replaces every literal newline in s with the two-character
// sequence `\n` so that an encoded record always occupies exactly one
// physical line. No other character is altered: arguments containing the
// delimiter sequence pass through as-is, which is a known limitation of the
// format shared with its consumers.
func EscapeArg(s string) string {
	if !strings.ContainsRune(s, '\n') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + strings.Count(s, "\n"))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			b.WriteString(`\n`)
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// UnescapeArg reverses EscapeArg. It is used only by readers of the log;
// the recording path never calls it.
func UnescapeArg(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// Encode serializes one invocation:
//
//	cwd||path||arg1||arg2...\n
//
// Arguments are newline-escaped; there is no delimiter after the last
// argument and none at all when args is empty. The result always contains
// exactly one literal newline, the trailing terminator.
func Encode(cwd, path string, args []string) string {
	var b strings.Builder
	b.WriteString(cwd)
	b.WriteString(Delimiter)
	b.WriteString(path)
	for _, arg := range args {
		b.WriteString(Delimiter)
		b.WriteString(EscapeArg(arg))
	}
	b.WriteString("\n")
	return b.String()
}

// Line encodes r. See Encode.
func (r Record) Line() string {
	return Encode(r.CWD, r.Path, r.Args)
}
