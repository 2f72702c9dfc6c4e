package jsast

import "testing"

func TestUnquoteString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "should unquote double quotes", input: `"hello"`, want: "hello"},
		{name: "should unquote single quotes", input: `'hello'`, want: "hello"},
		{name: "should unquote backticks", input: "`hello`", want: "hello"},
		{name: "should keep template placeholders verbatim", input: "`user ${id}`", want: "user ${id}"},
		{name: "should return short string as-is", input: "a", want: "a"},
		{name: "should handle mismatched quotes", input: `"hello'`, want: `"hello'`},
		{name: "should handle escaped single quotes", input: `'it\'s working'`, want: "it's working"},
		{name: "should keep double quotes inside single quotes", input: `'say "hi"'`, want: `say "hi"`},
		{name: "should handle escaped double quotes", input: `"say \"hello\""`, want: `say "hello"`},
		{name: "should decode escaped single quote inside double quotes", input: `"doesn\'t crash"`, want: "doesn't crash"},
		{name: "should decode code point escapes", input: `'emoji \u{1F600}'`, want: "emoji \U0001F600"},
		{name: "should join surrogate pairs", input: `'emoji \uD83D\uDE00'`, want: "emoji \U0001F600"},
		{name: "should decode hex and unicode escapes", input: `"\x41\u0042"`, want: "AB"},
		{name: "should drop line continuations", input: "\"line \\\ncontinued\"", want: "line continued"},
		{name: "should drop CRLF line continuations", input: "'a\\\r\nb'", want: "ab"},
		{name: "should decode vertical tab and null", input: `'a\vb\0'`, want: "a\vb\x00"},
		{name: "should decode legacy octal", input: `'\101\7'`, want: "A\a"},
		{name: "should keep unknown escapes as the character", input: `'\d\\'`, want: `d\`},
		{name: "should keep malformed unicode escapes literal", input: `'\u{zz}'`, want: "u{zz}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := UnquoteString(tt.input); got != tt.want {
				t.Errorf("UnquoteString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
