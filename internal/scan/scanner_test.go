package scan

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/shapestone/stream-csv/internal/record"
)

// stringSource adapts a string to CharSource for tests.
type stringSource struct {
	runes []rune
	pos   int
}

func newStringSource(s string) *stringSource {
	return &stringSource{runes: []rune(s)}
}

func (s *stringSource) ReadChars(p []rune) (int, error) {
	if s.pos >= len(s.runes) {
		return 0, io.EOF
	}
	n := copy(p, s.runes[s.pos:])
	s.pos += n
	return n, nil
}

func (s *stringSource) Close() error { return nil }

func scanAll(t *testing.T, input string) ([][]string, error) {
	t.Helper()

	line := record.NewLine()
	s := NewScanner(newStringSource(input), line, ',', '"')

	var out [][]string
	for {
		ok, err := s.ScanLine()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, line.Strings())
		line.Clear()
	}
}

func TestScanner_WellFormed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "simple record",
			input: "a,b,c\n",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "two records",
			input: "a,b\nc,d\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "crlf terminators",
			input: "a,b\r\nc\r\n",
			want:  [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:  "quoted delimiter",
			input: "\"a,b\",c\n",
			want:  [][]string{{"a,b", "c"}},
		},
		{
			name:  "doubled quote",
			input: "\"a\"\"b\"\n",
			want:  [][]string{{`a"b`}},
		},
		{
			name:  "quoted embedded newline",
			input: "\"a\nb\",c\n",
			want:  [][]string{{"a\nb", "c"}},
		},
		{
			name:  "quoted embedded crlf",
			input: "\"a\r\nb\"\n",
			want:  [][]string{{"a\r\nb"}},
		},
		{
			name:  "trailing empty field",
			input: "a,\n1,2\n",
			want:  [][]string{{"a", ""}, {"1", "2"}},
		},
		{
			name:  "leading empty field",
			input: ",a\n",
			want:  [][]string{{"", "a"}},
		},
		{
			name:  "empty quoted field",
			input: "\"\"\n",
			want:  [][]string{{""}},
		},
		{
			name:  "blank line is one empty field",
			input: "\n",
			want:  [][]string{{""}},
		},
		{
			name:  "trailing delimiter at eof",
			input: "a,",
			want:  [][]string{{"a", ""}},
		},
		{
			name:  "varying field counts",
			input: "a\na,b\na,b,c\n",
			want:  [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}},
		},
		{
			name:  "multibyte text",
			input: "å,日本語\n",
			want:  [][]string{{"å", "日本語"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanAll(t, tt.input)
			if err != nil {
				t.Fatalf("scanAll(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("scanAll(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScanner_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantChar int32
	}{
		{
			name:     "quote in unquoted field",
			input:    "ab\"cd\n",
			wantLine: 1,
			wantChar: '"',
		},
		{
			name:     "bare carriage return",
			input:    "x\rz\n",
			wantLine: 1,
			wantChar: 'z',
		},
		{
			name:     "bare carriage return on second line",
			input:    "a,b\nx\rz\n",
			wantLine: 2,
			wantChar: 'z',
		},
		{
			name:     "carriage return then eof",
			input:    "x\r",
			wantLine: 1,
			wantChar: EndOfInput,
		},
		{
			name:     "unclosed quote at eof",
			input:    "a,\"b",
			wantLine: 1,
			wantChar: EndOfInput,
		},
		{
			name:     "text after closing quote",
			input:    "\"a\"x\n",
			wantLine: 1,
			wantChar: 'x',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanAll(t, tt.input)
			if err == nil {
				t.Fatalf("scanAll(%q): expected error", tt.input)
			}

			var uc *UnexpectedCharError
			if !errors.As(err, &uc) {
				t.Fatalf("scanAll(%q) error = %v, want *UnexpectedCharError", tt.input, err)
			}
			if uc.Line != tt.wantLine {
				t.Errorf("error line = %d, want %d", uc.Line, tt.wantLine)
			}
			if uc.Char != tt.wantChar {
				t.Errorf("error char = %q, want %q", uc.Char, tt.wantChar)
			}
		})
	}
}

func TestScanner_CustomDialect(t *testing.T) {
	line := record.NewLine()
	s := NewScanner(newStringSource("a;'b;c';d\n"), line, ';', '\'')

	ok, err := s.ScanLine()
	if err != nil || !ok {
		t.Fatalf("ScanLine() = %v, %v", ok, err)
	}

	want := []string{"a", "b;c", "d"}
	if got := line.Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %q, want %q", got, want)
	}
}

func TestScanner_SkipLines(t *testing.T) {
	line := record.NewLine()
	s := NewScanner(newStringSource("a\nb\nc\nd\n"), line, ',', '"')

	skipped, err := s.SkipLines(2)
	if err != nil {
		t.Fatalf("SkipLines(2) error: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("SkipLines(2) = %d, want 2", skipped)
	}

	ok, err := s.ScanLine()
	if err != nil || !ok {
		t.Fatalf("ScanLine() = %v, %v", ok, err)
	}
	if got := line.Strings(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("fields after skip = %q, want [c]", got)
	}
}

func TestScanner_SkipLinesPastEnd(t *testing.T) {
	line := record.NewLine()
	s := NewScanner(newStringSource("a\nb\n"), line, ',', '"')

	skipped, err := s.SkipLines(10)
	if err != nil {
		t.Fatalf("SkipLines(10) error: %v", err)
	}
	if skipped != 2 {
		t.Errorf("SkipLines(10) = %d, want 2", skipped)
	}
}

func TestScanner_SkipLeavesNoFields(t *testing.T) {
	line := record.NewLine()
	s := NewScanner(newStringSource("a,b,c\nd\n"), line, ',', '"')

	if _, err := s.SkipLines(1); err != nil {
		t.Fatalf("SkipLines(1) error: %v", err)
	}
	if line.FieldCount() != 0 {
		t.Errorf("accumulator has %d fields after skip, want 0", line.FieldCount())
	}
}

func TestScanner_LinesCounter(t *testing.T) {
	line := record.NewLine()
	s := NewScanner(newStringSource("a\nb\nc\n"), line, ',', '"')

	for i := 1; i <= 3; i++ {
		ok, err := s.ScanLine()
		if err != nil || !ok {
			t.Fatalf("ScanLine() = %v, %v", ok, err)
		}
		line.Clear()
		if s.Lines() != i {
			t.Errorf("Lines() = %d, want %d", s.Lines(), i)
		}
	}
}
