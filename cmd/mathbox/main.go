package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mathbox"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
	maxInputBytes    = 1 << 20
)

func init() {
	version.SetDefaultModule("pkt.systems/mathbox")
}

// renderConfig is what process needs from the command line.
type renderConfig struct {
	display   bool
	textMode  bool
	parseOnly bool
	lines     bool
	sanitize  bool
	maxDepth  int
	width     int
	theme     mathbox.Theme
	osc8      bool
	colors    bool
}

func main() {
	var (
		exprs        []string
		themeName    string
		widthFlag    int
		osc8Flag     string
		listThemes   bool
		listCommands bool
		outPath      string
		boring       bool
		cfg          renderConfig
	)

	flags := pflag.NewFlagSet("mathbox", pflag.ExitOnError)
	flags.StringArrayVarP(&exprs, "expr", "e", nil, "Expression to lay out (repeatable; replaces inputs)")
	flags.BoolVarP(&cfg.display, "display", "d", false, "Lay out in display style")
	flags.BoolVar(&cfg.textMode, "text", false, "Start in text mode instead of math mode")
	flags.BoolVarP(&cfg.parseOnly, "parse", "p", false, "Dump the parse tree instead of the box tree")
	flags.BoolVarP(&cfg.lines, "lines", "l", false, "Treat each non-empty input line as its own expression")
	flags.BoolVar(&cfg.sanitize, "sanitize", false, "Strip control characters and invalid UTF-8 instead of rejecting input")
	flags.IntVar(&cfg.maxDepth, "max-depth", mathbox.DefaultMaxDepth, "Maximum nesting depth")
	flags.BoolVar(&cfg.colors, "colors", true, "Paint glyphs in their \\color")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&listCommands, "list-commands", false, "List commands known to the default registry")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate non-ANSI output")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mathbox [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are files, file:// or http(s):// URLs. If no input or -e is")
		fmt.Fprintln(os.Stderr, "provided, the expression is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listThemes {
		printThemes(os.Stdout)
		return
	}
	if listCommands {
		printCommands(os.Stdout)
		return
	}

	theme, ok := mathbox.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", themeName)
		printThemes(os.Stderr)
		os.Exit(2)
	}
	osc8, err := resolveOSC8(osc8Flag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		os.Exit(2)
	}

	var reader io.Reader
	if len(exprs) > 0 {
		reader = strings.NewReader(strings.Join(exprs, "\n"))
		cfg.lines = cfg.lines || len(exprs) > 1
	} else {
		r, closer, err := openInputs(flags.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		if closer != nil {
			defer func() { _ = closer.Close() }()
		}
		reader = r
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	cfg.width = resolveWidth(widthFlag)
	cfg.theme = theme
	cfg.osc8 = osc8
	if boring || !isTerminal(writer) && outPath != "" {
		cfg.theme = boringTheme()
		cfg.osc8 = false
		cfg.colors = false
	}
	if err := process(reader, writer, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "mathbox: %v\n", err)
		os.Exit(1)
	}
}

// process reads one expression, or one per line, from r and writes its tree
// to w. Expressions are separated by a blank line.
func process(r io.Reader, w io.Writer, cfg renderConfig) error {
	src, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(src) > maxInputBytes {
		return fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	if cfg.sanitize {
		src = mathbox.SanitizeInput(src)
	} else if err := mathbox.ValidateInput(src); err != nil {
		return err
	}

	exprs := []string{strings.TrimRight(string(src), "\r\n")}
	if cfg.lines {
		exprs = exprs[:0]
		scanner := bufio.NewScanner(bytes.NewReader(src))
		scanner.Buffer(make([]byte, 0, 64*1024), maxInputBytes)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				exprs = append(exprs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("scan input: %w", err)
		}
	}

	settings := []mathbox.Setting{
		mathbox.WithDisplayMode(cfg.display),
		mathbox.WithMaxDepth(cfg.maxDepth),
	}
	if cfg.textMode {
		settings = append(settings, mathbox.WithMode(mathbox.TextMode))
	}
	req := mathbox.DumpRequest{
		Writer: w,
		Width:  cfg.width,
		Theme:  cfg.theme,
		OSC8:   cfg.osc8,
		Colors: cfg.colors,
	}

	failed := 0
	for i, expr := range exprs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := dumpExpression(expr, settings, cfg.parseOnly, req); err != nil {
			var perr *mathbox.Error
			if !errors.As(err, &perr) {
				return err
			}
			failed++
			if _, err := fmt.Fprintln(w, paintError(cfg.theme, err.Error())); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

func dumpExpression(expr string, settings []mathbox.Setting, parseOnly bool, req mathbox.DumpRequest) error {
	if parseOnly {
		nodes, err := mathbox.Parse(expr, settings...)
		if err != nil {
			return err
		}
		return mathbox.WriteParseTree(nodes, req)
	}
	root, err := mathbox.Build(expr, settings...)
	if err != nil {
		return err
	}
	return mathbox.WriteBoxTree(root, req)
}

func paintError(theme mathbox.Theme, msg string) string {
	if theme == nil {
		return msg
	}
	if prefix := theme.Styles().Error.Prefix; prefix != "" {
		return prefix + msg + "\x1b[0m"
	}
	return msg
}

func printThemes(w io.Writer) {
	for _, name := range mathbox.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func printCommands(w io.Writer) {
	for _, name := range mathbox.DefaultRegistry().Names() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return mathbox.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func boringTheme() mathbox.Theme {
	return mathbox.NewTheme("boring", mathbox.Styles{})
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader reads its sources one after another, opening each on
// first use.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
