package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does not run the editor itself. Callers hand the returned *exec.Cmd to
// tea.ExecProcess so Bubble Tea releases the terminal while it runs.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionHeader = `<!--
StyleSense: write your comment below.

- SAVE and EXIT to post (e.g., :wq in vi).
- Leaving the file empty cancels.
`

const instructionFooter = "-->\n\n"

func instructions(subject string) string {
	var b strings.Builder
	b.WriteString(instructionHeader)
	if s := strings.TrimSpace(subject); s != "" {
		b.WriteString("\nCommenting on: ")
		b.WriteString(strings.ReplaceAll(s, "-->", "--"))
		b.WriteString("\n")
	}
	b.WriteString(instructionFooter)
	return b.String()
}

// Cmd writes content under an instruction block naming subject to a temp
// file and returns the editor command for it together with the file path.
func (e *EnvEditor) Cmd(content, subject string) (*exec.Cmd, string, error) {
	editorCmd := os.Getenv("EDITOR")
	if editorCmd == "" {
		editorCmd = "vi"
	}

	tmpFile, err := os.CreateTemp("", "stylesense-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructions(subject) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	return exec.Command(editorCmd, tmpPath), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction block, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, "-->"); idx != -1 {
		content = content[idx+3:]
	}
	return strings.TrimSpace(content), nil
}
