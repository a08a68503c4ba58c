package editor

import (
	"os"
	"strings"
	"testing"
)

func TestCmd_UsesEditorAndWritesTemplate(t *testing.T) {
	t.Setenv("EDITOR", "cat")
	e := NewEnvEditor()

	cmd, path, err := e.Cmd("hello", "Casual street style")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	defer os.Remove(path)
	if cmd.Path == "" || cmd.Args[0] != "cat" || cmd.Args[1] != path {
		t.Fatalf("expected command populated, got %v", cmd.Args)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Commenting on: Casual street style") || !strings.HasSuffix(text, "hello") {
		t.Fatalf("unexpected template content: %q", text)
	}
}

func TestCmd_SubjectCannotCloseInstructionBlock(t *testing.T) {
	t.Setenv("EDITOR", "cat")
	_, path, err := NewEnvEditor().Cmd("", "sneaky --> text")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	content, err := NewEnvEditor().ReadContent(path)
	if err != nil {
		t.Fatalf("read content failed: %v", err)
	}
	if content != "" {
		t.Fatalf("subject leaked into content: %q", content)
	}
}

func TestReadContent_StripsInstructionAndDeletesFile(t *testing.T) {
	e := NewEnvEditor()
	f, err := os.CreateTemp("", "stylesense-test-*.md")
	if err != nil {
		t.Fatalf("create temp failed: %v", err)
	}
	path := f.Name()
	_, _ = f.WriteString(instructions("") + "\nline1\nline2\n")
	_ = f.Close()

	content, err := e.ReadContent(path)
	if err != nil {
		t.Fatalf("read content failed: %v", err)
	}
	if content != "line1\nline2" {
		t.Fatalf("unexpected content: %q", content)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be deleted")
	}
}
