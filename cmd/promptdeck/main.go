package main

import (
	"os"
	"strings"

	"promptdeck/internal/cli"
)

func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range []string{"task-", "tmpl-"} {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return true
		}
	}
	return false
}

// isAddress reports whether s looks like a pasted app address ("?page=main&div=VHA").
func isAddress(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "?") || strings.HasPrefix(s, "page=")
}

// rewriteShortcutArgs expands the first positional token:
//
//	promptdeck <task-id>   -> promptdeck tasks show <task-id>
//	promptdeck ?page=main  -> promptdeck browse --at ?page=main
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so their values are skipped.
func rewriteShortcutArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--db":        true,
		"--config":    true,
		"--actor":     true,
		"--format":    true,
		"--log-level": true,
	}

	expand := func(i int) []string {
		var insert []string
		switch a := argv[i]; {
		case isTaskID(a):
			insert = []string{"tasks", "show"}
		case isAddress(a):
			insert = []string{"browse", "--at"}
		default:
			return argv
		}
		out := make([]string, 0, len(argv)+len(insert))
		out = append(out, argv[:i]...)
		out = append(out, insert...)
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isTaskID(argv[i+1]) {
				return expand(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		return expand(i)
	}
	return argv
}

func main() {
	os.Args = rewriteShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
