// Package open launches URLs with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// launchers build the command that hands a URL to the desktop, keyed by runtime.GOOS.
var launchers = map[string]func(input string) *exec.Cmd{
	"windows": func(input string) *exec.Cmd {
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input)
	},
	"darwin":  func(input string) *exec.Cmd { return exec.Command("open", input) },
	"linux":   func(input string) *exec.Cmd { return exec.Command("xdg-open", input) },
	"android": func(input string) *exec.Cmd { return exec.Command("termux-open", input) },
}

// Start opens input with the default handler without waiting for it to exit.
func Start(input string) error {
	launch, ok := launchers[runtime.GOOS]
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return launch(input).Start()
}
