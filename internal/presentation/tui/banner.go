package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the vitrine banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"        _ _        _            ", "#818cf8"},
		{" __   _(_) |_ _ __(_)_ __   ___ ", "#a78bfa"},
		{" \\ \\ / / | __| '__| | '_ \\ / _ \\", "#c084fc"},
		{"  \\ V /| | |_| |  | | | | |  __/", "#e879f9"},
		{"   \\_/ |_|\\__|_|  |_|_| |_|\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("   v"+v).Faint())
	}
	fmt.Fprintln(w)
}
