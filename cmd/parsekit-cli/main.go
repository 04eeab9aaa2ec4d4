// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"parsekit/internal/errors"
	"parsekit/internal/frontend"
	"parsekit/internal/reader"
)

func main() {
	if len(os.Args) > 1 {
		os.Exit(runFile(os.Args[1]))
	}
	os.Exit(runRepl())
}

func runFile(path string) int {
	startTime := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		return 1
	}

	ok := report(path, string(content))
	duration := formatDuration(time.Since(startTime))

	if ok {
		color.Green("Successfully read %s in %s", path, duration)
		return 0
	}
	color.Red("Failed to read %s after %s", path, duration)
	return 1
}

func runRepl() int {
	scanner := bufio.NewScanner(os.Stdin)
	failed := false
	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" && !report("repl", line) {
			failed = true
		}
		fmt.Print("> ")
	}
	fmt.Println()
	if failed {
		return 1
	}
	return 0
}

// report runs the reader over source, printing the resulting forms, any
// accumulated warnings, or a single colorized diagnostic for the first
// failure. It reports whether the read succeeded.
func report(name, source string) bool {
	result := frontend.ReadSource(source)
	reporter := errors.NewReporter(name, source)

	if result.Diagnostic != nil {
		fmt.Print(reporter.FormatError(*result.Diagnostic))
		return false
	}

	for _, form := range result.Forms {
		fmt.Println(reader.Sprint(form))
	}
	for _, w := range result.Warnings {
		color.Yellow("warning: %s", w)
	}
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1_000_000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1_000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
