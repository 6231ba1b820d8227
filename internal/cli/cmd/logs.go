package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/infrastructure/config"
	"github.com/phreebee/dockyard/internal/logging"
)

var (
	logsFollow bool
	logsLines  int
	logsYes    bool
)

const defaultLogsLines = 50

var logsCmd = &cobra.Command{
	Use:   "logs [session]",
	Short: "View preview logs",
	Long: `View the log written by 'dockyard shell'.

Without arguments, shows the last lines of the log.
With a session ID (or partial match), shows only that session's lines.

Examples:
  dockyard logs                 # Last 50 lines
  dockyard logs a7b3            # Lines of the session ending in 'a7b3'
  dockyard logs -f              # Follow the log in real-time
  dockyard logs -n 200 a7b3     # Last 200 lines of a session`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

var logsSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions found in the log",
	Args:  cobra.NoArgs,
	RunE:  runLogsSessions,
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Truncate the log file",
	Args:  cobra.NoArgs,
	RunE:  runLogsClear,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsSessionsCmd)
	logsCmd.AddCommand(logsClearCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
	logsClearCmd.Flags().BoolVarP(&logsYes, "yes", "y", false, "skip confirmation")
}

// SessionInfo summarizes one session's lines in the log file.
type SessionInfo struct {
	SessionID string
	ShortID   string
	First     time.Time
	Last      time.Time
	Lines     int
}

// logEntry represents a parsed JSON log entry.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Session   string `json:"session_id"`
	Component string `json:"component"`
	Category  string `json:"category"`
}

func runLogs(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	logPath, err := config.GetLogFile()
	if err != nil {
		return err
	}
	if _, err := os.Stat(logPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println(app.Theme.Subtle.Render("No logs yet. Run 'dockyard shell' to create some."))
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}

	var filter func(logEntry) bool
	if len(args) == 1 {
		sessions, err := readSessions(logPath)
		if err != nil {
			return err
		}
		session, err := findSession(sessions, args[0])
		if err != nil {
			return err
		}
		id := session.SessionID
		filter = func(e logEntry) bool { return e.Session == id }
	}

	if logsFollow {
		return tailLog(logPath, filter, app.Theme)
	}
	return showLog(os.Stdout, logPath, logsLines, filter, app.Theme)
}

func runLogsSessions(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	theme := app.Theme

	logPath, err := config.GetLogFile()
	if err != nil {
		return err
	}
	sessions, err := readSessions(logPath)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println(theme.Subtle.Render("No sessions found. Run 'dockyard shell' to create logs."))
		return nil
	}

	fmt.Println(theme.Title.Render("Sessions (newest first):"))
	fmt.Println()
	for i := range sessions {
		s := &sessions[i]
		fmt.Printf("  %s  %s  %s\n",
			theme.Highlight.Render(s.ShortID),
			theme.Subtle.Render(s.Last.Local().Format("2006-01-02 15:04:05")),
			theme.Subtle.Render(fmt.Sprintf("(%d lines)", s.Lines)),
		)
	}
	fmt.Println()
	fmt.Println(theme.Subtle.Render("Use 'dockyard logs <id>' to view a session"))
	return nil
}

func runLogsClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	logPath, err := config.GetLogFile()
	if err != nil {
		return err
	}
	info, err := os.Stat(logPath)
	if err != nil || info.Size() == 0 {
		fmt.Println(app.Theme.Subtle.Render("No logs to clear"))
		return nil
	}

	if !logsYes {
		ok, err := styles.AskConfirm(app.Theme, fmt.Sprintf("Clear %s?", logPath))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}
	}

	if err := os.Truncate(logPath, 0); err != nil {
		return fmt.Errorf("clear log file: %w", err)
	}
	fmt.Printf("%s %s\n", app.Theme.SuccessStyle.Render(styles.IconCheck), "Log cleared")
	return nil
}

// readSessions scans the log file and groups its entries by session,
// newest first.
func readSessions(logPath string) ([]SessionInfo, error) {
	file, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return scanSessions(file)
}

func scanSessions(r io.Reader) ([]SessionInfo, error) {
	byID := make(map[string]*SessionInfo)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var entry logEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil || entry.Session == "" {
			continue
		}
		s, ok := byID[entry.Session]
		if !ok {
			s = &SessionInfo{SessionID: entry.Session, ShortID: logging.ShortSessionID(entry.Session)}
			byID[entry.Session] = s
		}
		s.Lines++
		if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
			if s.First.IsZero() || t.Before(s.First) {
				s.First = t
			}
			if t.After(s.Last) {
				s.Last = t
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	sessions := make([]SessionInfo, 0, len(byID))
	for _, s := range byID {
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Last.After(sessions[j].Last)
	})
	return sessions, nil
}

// findSession finds a session by partial ID match.
func findSession(sessions []SessionInfo, query string) (*SessionInfo, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions found")
	}

	queryNormalized := strings.ToLower(strings.TrimSpace(query))

	// Try exact short ID match first
	for i := range sessions {
		if strings.EqualFold(sessions[i].ShortID, queryNormalized) {
			return &sessions[i], nil
		}
	}

	// Try partial match on full session ID
	var matches []SessionInfo
	for i := range sessions {
		if strings.Contains(strings.ToLower(sessions[i].SessionID), queryNormalized) {
			matches = append(matches, sessions[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matching '%s' found", query)
	case 1:
		return &matches[0], nil
	default:
		var ids []string
		for i := range matches {
			ids = append(ids, matches[i].ShortID)
		}
		return nil, fmt.Errorf("multiple sessions match '%s': %s", query, strings.Join(ids, ", "))
	}
}

// showLog writes the last N matching lines of the log.
func showLog(w io.Writer, logPath string, lines int, filter func(logEntry) bool, theme *styles.Theme) (retErr error) {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	tail, err := lastLines(file, lines, filter)
	if err != nil {
		return err
	}
	for _, line := range tail {
		fmt.Fprintln(w, colorizeLogLine(line, theme))
	}
	return nil
}

// lastLines keeps the last n lines of r accepted by filter. A nil filter
// accepts everything.
func lastLines(r io.Reader, n int, filter func(logEntry) bool) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !matchesFilter(line, filter) {
			continue
		}
		if len(ring) == n {
			copy(ring, ring[1:])
			ring = ring[:n-1]
		}
		ring = append(ring, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return ring, nil
}

func matchesFilter(line string, filter func(logEntry) bool) bool {
	if filter == nil {
		return true
	}
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return false
	}
	return filter(entry)
}

// tailLog follows the log in real-time.
func tailLog(logPath string, filter func(logEntry) bool, theme *styles.Theme) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Seek to end
	_, _ = file.Seek(0, io.SeekEnd)

	fmt.Println(theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Println()

	reader := bufio.NewReader(file)
	pending := ""
	for {
		chunk, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// No full line yet; keep partial data.
				pending += chunk
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("read log file: %w", err)
		}

		pending += chunk
		for {
			idx := strings.IndexByte(pending, '\n')
			if idx == -1 {
				break
			}
			line := pending[:idx]
			pending = pending[idx+1:]
			if matchesFilter(line, filter) {
				fmt.Println(colorizeLogLine(line, theme))
			}
		}
	}
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil {
		return formatJSONLogLine(entry, theme)
	}

	// Fallback to pattern matching for non-JSON logs
	switch {
	case containsAny(line, "ERR", "ERROR"):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, "WRN", "WARN"):
		return theme.WarningStyle.Render(line)
	case containsAny(line, "DBG", "DEBUG"):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

// formatJSONLogLine formats a parsed JSON log entry with colors.
func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := ""
	if entry.Time != "" {
		if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
			timeStr = t.Local().Format("15:04:05")
		} else {
			timeStr = entry.Time
		}
	}

	var levelStr string
	switch entry.Level {
	case "error":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	msg := entry.Message
	if entry.Category != "" {
		msg = theme.Subtle.Render("["+entry.Category+"]") + " " + msg
	}
	return fmt.Sprintf("%s %s %s", theme.Subtle.Render(timeStr), levelStr, msg)
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrs ...string) bool {
	sLower := strings.ToLower(s)
	for _, substr := range substrs {
		if strings.Contains(sLower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
