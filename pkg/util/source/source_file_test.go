package source

import (
	"testing"
)

func TestLineColumn_SingleLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("hello world"))
	//
	checkLineColumn(t, srcfile, 0, 1, 1)
	checkLineColumn(t, srcfile, 6, 1, 7)
}

func TestLineColumn_MultiLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo\nthree"))
	//
	checkLineColumn(t, srcfile, 0, 1, 1)
	checkLineColumn(t, srcfile, 4, 2, 1)
	checkLineColumn(t, srcfile, 6, 2, 3)
	checkLineColumn(t, srcfile, 8, 3, 1)
	checkLineColumn(t, srcfile, 12, 3, 5)
}

func TestLineColumn_Crlf(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\r\ntwo"))
	//
	checkLineColumn(t, srcfile, 5, 2, 1)
	checkLineColumn(t, srcfile, 7, 2, 3)
}

func TestLineColumn_BeyondEnd(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo"))
	// Positions beyond the end report against the last line.
	line, _ := srcfile.LineColumn(100)
	//
	if line != 2 {
		t.Errorf("expected line 2, got %d", line)
	}
}

func TestEnclosingLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo\nthree"))
	//
	line := srcfile.FindFirstEnclosingLine(NewSpan(5, 6))
	//
	if line.Number() != 2 {
		t.Errorf("expected line 2, got %d", line.Number())
	} else if line.String() != "two" {
		t.Errorf("expected \"two\", got %q", line.String())
	} else if line.Start() != 4 {
		t.Errorf("expected start 4, got %d", line.Start())
	}
}

func TestEnclosingLine_Tabs(t *testing.T) {
	// Tabs are replaced with single spaces so a caret rendered under the line
	// aligns in fixed-width output.
	srcfile := NewSourceFile("test", []byte("\tone\ttwo\n"))
	//
	line := srcfile.FindFirstEnclosingLine(NewSpan(1, 2))
	//
	if line.String() != " one two" {
		t.Errorf("expected \" one two\", got %q", line.String())
	}
}

func TestEnclosingLine_Crlf(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\r\ntwo\r\n"))
	//
	line := srcfile.FindFirstEnclosingLine(NewSpan(0, 1))
	//
	if line.String() != "one" {
		t.Errorf("expected \"one\", got %q", line.String())
	}
}

func TestSyntaxError(t *testing.T) {
	srcfile := NewSourceFile("test.pddl", []byte("one\ntwo"))
	err := srcfile.SyntaxError(NewSpan(4, 7), "broken")
	//
	if err.Message() != "broken" {
		t.Errorf("unexpected message %q", err.Message())
	} else if err.FirstEnclosingLine().Number() != 2 {
		t.Errorf("unexpected line %d", err.FirstEnclosingLine().Number())
	} else if err.SourceFile().Filename() != "test.pddl" {
		t.Errorf("unexpected filename %q", err.SourceFile().Filename())
	}
}

func checkLineColumn(t *testing.T, srcfile *File, index int, line int, col int) {
	l, c := srcfile.LineColumn(index)
	//
	if l != line || c != col {
		t.Errorf("index %d: expected %d:%d, got %d:%d", index, line, col, l, c)
	}
}
