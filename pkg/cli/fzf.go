package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// FzfAvailable reports whether fzf is on PATH.
func FzfAvailable() bool {
	_, err := exec.LookPath("fzf")
	return err == nil
}

// SelectCommandWithFzfStd displays the commands in fzf and returns the selected command name.
func SelectCommandWithFzfStd(commands []stdimg.CommandSpec) (string, error) {
	var b strings.Builder
	for _, c := range commands {
		// format as "name: description"
		b.WriteString(fmt.Sprintf("%s: %s\n", c.Name, c.Description))
	}

	cmd := exec.Command("fzf", "--prompt=Command> ")
	cmd.Stdin = strings.NewReader(b.String())
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	name, _, _ := strings.Cut(selection, ":")
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("no command selected")
}

// SelectFileWithFzf lists image files under startDir in fzf and returns the
// chosen path. It shells out to find and fzf, both of which must be on PATH.
func SelectFileWithFzf(startDir string) (string, error) {
	previewCmd := "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	if isKitty() {
		previewCmd = "kitty +kitten icat --silent {} 2>/dev/null || " + previewCmd
	}
	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.bmp' -o -iname '*.gif' -o -iname '*.tif' -o -iname '*.tiff' -o -iname '*.webp' \\) | fzf --height 100%% --border --prompt='Files> ' --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}
