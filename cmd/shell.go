package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rlcoach/replay-analysis/internal/reportbuild"
	"github.com/rlcoach/replay-analysis/internal/reportcache"
)

var errInterrupt = errors.New("interrupt")

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the report cache. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := reportcache.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open report cache: %w", err)
	}
	defer db.Close()

	cGreeting.Println("replayctl shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	fd := int(os.Stdin.Fd())
	isTTY := term.IsTerminal(fd)

	var history []string
	var scanner *bufio.Scanner
	if !isTTY {
		scanner = bufio.NewScanner(os.Stdin)
	}

	for {
		var line string
		if isTTY {
			line, err = readLine(history)
			if errors.Is(err, io.EOF) {
				fmt.Println()
				break
			}
			if err != nil { // Ctrl+C: redraw prompt and continue
				continue
			}
		} else {
			cPrompt.Print("replayctl")
			cMuted.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				break
			}
			line = strings.TrimSpace(scanner.Text())
		}

		if line == "" {
			continue
		}
		if isTTY && (len(history) == 0 || history[len(history)-1] != line) {
			history = append(history, line)
		}

		tokens := strings.Fields(line)
		cmdName, args := tokens[0], tokens[1:]

		switch cmdName {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "parse":
			shellParse(db, args)
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <replay-id>")
				continue
			}
			shellShow(db, args[0])
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmdName)
		}
	}
	return nil
}

// readLine prints the prompt and reads one line in raw terminal mode,
// supporting up/down arrow history navigation within the current session.
// Returns ("", io.EOF) on Ctrl+D or closed input, ("", errInterrupt) on Ctrl+C.
func readLine(hist []string) (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	var buf []byte
	histIdx := len(hist)
	var savedLine string

	redraw := func() {
		os.Stdout.WriteString("\r\x1b[K")
		cPrompt.Fprint(os.Stdout, "replayctl")
		cMuted.Fprint(os.Stdout, "> ")
		os.Stdout.Write(buf)
	}
	redraw()

	b := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(b); err != nil {
			os.Stdout.WriteString("\r\n")
			return "", io.EOF
		}
		switch b[0] {
		case 3: // Ctrl+C
			os.Stdout.WriteString("\r\n")
			return "", errInterrupt
		case 4: // Ctrl+D on an empty line
			if len(buf) == 0 {
				os.Stdout.WriteString("\r\n")
				return "", io.EOF
			}
		case 13, 10: // Enter
			line := strings.TrimSpace(string(buf))
			os.Stdout.WriteString("\r\n")
			return line, nil
		case 127, 8: // Backspace / DEL
			if len(buf) > 0 {
				_, size := utf8.DecodeLastRune(buf)
				buf = buf[:len(buf)-size]
				redraw()
			}
		case 27: // ESC — read the rest of the CSI sequence
			seq := make([]byte, 2)
			if _, err := os.Stdin.Read(seq[:1]); err != nil || seq[0] != '[' {
				continue
			}
			if _, err := os.Stdin.Read(seq[1:]); err != nil {
				continue
			}
			switch seq[1] {
			case 'A': // Up arrow
				if histIdx == len(hist) {
					savedLine = string(buf)
				}
				if histIdx > 0 {
					histIdx--
					buf = []byte(hist[histIdx])
					redraw()
				}
			case 'B': // Down arrow
				if histIdx < len(hist) {
					histIdx++
					if histIdx == len(hist) {
						buf = []byte(savedLine)
					} else {
						buf = []byte(hist[histIdx])
					}
					redraw()
				}
			}
		default:
			if b[0] >= 32 {
				buf = append(buf, b[0])
				redraw()
			}
		}
	}
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"parse <replay-file>", "parse a replay, print + cache its report"},
		{"list", "list cached reports"},
		{"show <replay-id>", "re-display a cached report"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Print(r.cmd)
		fmt.Printf("  —  %s\n", r.desc)
	}
	fmt.Println()
}

func shellParse(db *reportcache.DB, args []string) {
	if len(args) == 0 {
		cError.Fprintln(os.Stderr, "usage: parse <replay-file>")
		return
	}
	report, errReport := reportbuild.Build(args[0], adapterFor(cfg.Parser.Adapter))
	if errReport != nil {
		cError.Fprintf(os.Stderr, "error: %s\n", errReport.Details)
		return
	}
	if err := db.Put(report); err != nil {
		cWarn.Fprintf(os.Stderr, "warn: could not cache report: %v\n", err)
	}
	shellPrintJSON(report)
}

func shellList(db *reportcache.DB) {
	ids, err := db.List()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(ids) == 0 {
		cMuted.Println("no cached reports")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func shellShow(db *reportcache.DB, replayID string) {
	r, err := db.Get(replayID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if r == nil {
		cError.Fprintf(os.Stderr, "no cached report for replay_id %s\n", replayID)
		return
	}
	shellPrintJSON(r)
}

func shellPrintJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
