// ggwalk is a terminal utility to navigate a folder structure
// containing a Gopher hole or a Gemini capsule, to verify a site
// before deploying it to its hosting environment.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"ggwalk/config"
	"ggwalk/nav"
	"ggwalk/render"
	"ggwalk/sites"
	"ggwalk/walk"
)

var verbose = false

func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}

func vprintf(format string, args ...any) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}

func main() {
	store := &sites.Store{}
	initConfig := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			printUsage()
			return
		case "-v", "--verbose":
			verbose = true
		case "--init-config":
			initConfig = true
		case "-s", "--site-url":
			if i+1 >= len(args) {
				errorf("missing value for %s", args[i])
				os.Exit(2)
			}
			i++
			url := strings.TrimSpace(args[i])
			if !strings.HasPrefix(url, "gopher://") && !strings.HasPrefix(url, "gemini://") {
				errorf("invalid site-url argument (must start with either gopher:// or gemini://)")
				os.Exit(2)
			}
			store.AddURL(url)
		default:
			if strings.HasPrefix(args[i], "-") {
				errorf("invalid argument %s", args[i])
				printUsage()
				os.Exit(2)
			}
			store.AddPath(args[i])
		}
	}

	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		errorf("%v", err)
		os.Exit(1)
	}

	if err := run(cfg, store); err != nil {
		errorf("%v", err)
		os.Exit(1)
	}
	fmt.Println("done")
}

func printUsage() {
	fmt.Println(`ggwalk - Gopher and Gemini walker

Usage: ggwalk [flags] [<path> ... <path>]

Flags:
  -s, --site-url <url>  Site url for the sites being processed
                        (e.g. gopher://my.site or gemini://host.name.com);
                        replacing site-url with <path> in a link should
                        yield a valid path (this flag can repeat)
  -v, --verbose         Produce extra verbose output
  --init-config         Output default config (redirect to ~/.config/ggwalk/config.toml)
  -h, --help            Print this help`)
}

// platformOpener delegates non-text files and remote URLs to the
// operating system's opener, or to a configured override.
type platformOpener struct {
	command string
}

func (o *platformOpener) open(arg string) error {
	command := o.command
	if command == "" {
		switch runtime.GOOS {
		case "darwin":
			command = "open"
		default:
			command = "xdg-open"
		}
	}
	return exec.Command(command, arg).Start()
}

func (o *platformOpener) OpenFile(path string) error { return o.open(path) }
func (o *platformOpener) OpenURL(url string) error   { return o.open(url) }

func run(cfg *config.Config, store *sites.Store) error {
	columns := cfg.Display.DefaultWidth
	isTTY := render.IsTerminal(os.Stdout)
	if isTTY {
		if w, _, err := render.TerminalSize(); err == nil {
			columns = w
		}
	}

	vprintf("terminal width %d, color %v", columns, cfg.Display.Color && isTTY)

	printer := render.NewPrinter(os.Stdout, columns, cfg.Display.Color && isTTY)
	opener := &platformOpener{command: cfg.Opener.Command}
	engine := nav.New(store, printer, opener, cfg.Display.MinWidth)

	fmt.Println("Welcome to Gopher and Gemini walker")
	fmt.Println("Type ? or help for list of commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("walker> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		// Track resizes between commands.
		if isTTY {
			if w, _, err := render.TerminalSize(); err == nil {
				printer.SetColumns(w)
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if n, err := strconv.Atoi(cmd); err == nil {
			if err := engine.FollowLink(n); err != nil {
				errorf("%v", err)
			}
			continue
		}

		switch cmd {
		case "q", "e", "quit", "exit":
			return nil
		case "v", "visit":
			cmdVisit(engine, store, arg)
		case "b", "back":
			if err := engine.Back(); err != nil {
				errorf("%v", err)
			}
		case "f", "forward":
			if err := engine.Forward(); err != nil {
				errorf("%v", err)
			}
		case "l", "links":
			cmdLinks(engine, printer)
		case "p", "paths":
			printer.Banner("List of Paths")
			printer.List(store.Paths, 0)
		case "u", "urls":
			printer.Banner("List of URLs")
			printer.List(store.URLs, 0)
		case "a", "add":
			cmdAdd(store, arg)
		case "re", "remove":
			cmdRemove(store, arg)
		case "s", "save":
			cmdSave(store, cfg, arg)
		case "r", "read":
			cmdRead(store, cfg, arg)
		case "c", "check":
			cmdCheck(store, printer, arg)
		case "dump":
			cmdDump(engine, store, printer)
		case "set":
			cmdSet(printer, arg)
		case "?", "help":
			printHelp()
		default:
			errorf("invalid command %q (try help)", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  v[isit] [<number>|<path>]  Visit a path to a Gopher hole or Gemini capsule
  <number>                   Follow the link with that id in the current page
  b[ack]                     Back to the previous page
  f[orward]                  Forward to the next page
  l[inks]                    List the raw links in the current page
  p[aths]                    List bookmarked site paths
  u[rls]                     List bookmarked site URLs
  a[dd] p[ath]|u[rl] <value> Add a path or url bookmark
  re[move] p[ath]|u[rl] <number>|<value>
                             Remove a path or url bookmark
  s[ave] [<file>]            Save bookmarks (default config.json)
  r[ead] [<file>]            Read bookmarks (default config.json)
  c[heck] [<path>]           Walk local links and report orphan files
  dump                       Dump internal structures
  set color=true|false       Toggle color output
  q[uit]                     Exit`)
}

// cmdVisit resolves the visit argument the way the original tool did:
// a number picks a bookmarked path, a path is used directly, no
// argument revisits the current base or the single bookmark.
func cmdVisit(engine *nav.Engine, store *sites.Store, arg string) {
	ctx := engine.Context()
	target := ""
	switch {
	case arg == "":
		switch {
		case ctx.Base != "":
			target = ctx.Base
		case len(store.Paths) == 1:
			target = store.Paths[0]
		default:
			errorf("missing path or index")
			return
		}
	default:
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 || n > len(store.Paths) {
				errorf("invalid index")
				return
			}
			target = store.Paths[n-1]
		} else {
			target = strings.TrimRight(arg, "/")
		}
	}
	vprintf("visiting [%s]", target)
	if err := engine.Visit(target); err != nil {
		errorf("%v", err)
	}
}

func cmdLinks(engine *nav.Engine, printer *render.Printer) {
	links := engine.Links()
	if len(links) == 0 {
		fmt.Println("No links currently available")
		return
	}
	printer.Banner("List of raw links in the page")
	printer.RawLinks(links)
}

func cmdAdd(store *sites.Store, arg string) {
	kind, value, ok := strings.Cut(arg, " ")
	if !ok || strings.TrimSpace(value) == "" {
		errorf("usage: a[dd] [p[ath] <path> | u[rl] <url>]")
		return
	}
	value = strings.TrimSpace(value)
	switch kind {
	case "p", "path":
		store.AddPath(value)
	case "u", "url":
		store.AddURL(value)
	default:
		errorf("usage: a[dd] [p[ath] <path> | u[rl] <url>]")
	}
}

func cmdRemove(store *sites.Store, arg string) {
	kind, value, ok := strings.Cut(arg, " ")
	if !ok || strings.TrimSpace(value) == "" {
		errorf("usage: re[move] [p[ath] <number>|<path> | u[rl] <number>|<url>]")
		return
	}
	value = strings.TrimSpace(value)
	var err error
	switch kind {
	case "p", "path":
		err = store.RemovePath(value)
	case "u", "url":
		err = store.RemoveURL(value)
	default:
		errorf("usage: re[move] [p[ath] <number>|<path> | u[rl] <number>|<url>]")
		return
	}
	if err != nil {
		errorf("%v", err)
	}
}

func cmdSave(store *sites.Store, cfg *config.Config, arg string) {
	name := arg
	if name == "" {
		name = cfg.Bookmarks.File
	}
	if err := store.Save(name); err != nil {
		errorf("%v", err)
		return
	}
	fmt.Println("saved to", name)
}

func cmdRead(store *sites.Store, cfg *config.Config, arg string) {
	name := arg
	if name == "" {
		name = cfg.Bookmarks.File
	}
	if err := store.Read(name); err != nil {
		errorf("%v", err)
		return
	}
	fmt.Println("read from", name)
}

func cmdCheck(store *sites.Store, printer *render.Printer, arg string) {
	roots := store.Paths
	if arg != "" {
		roots = []string{arg}
	}
	report, err := walk.Check(roots)
	if err != nil {
		errorf("%v", err)
		return
	}

	printer.Banner("Offline link check")
	fmt.Printf("Files reached: %d\n", len(report.Visited))
	for _, root := range report.Skipped {
		warnf("no gophermap or gemini index at [%s], skipped", root)
	}
	if len(report.External) > 0 {
		fmt.Println("\nExternal links (ignored):")
		printer.List(report.External, 0)
	}
	if len(report.Missing) > 0 {
		fmt.Println("\nBroken local links:")
		printer.List(report.Missing, 0)
	}
	if len(report.Orphans) > 0 {
		fmt.Println("\nOrphan files (on disk but never linked):")
		printer.List(report.Orphans, 0)
	} else {
		fmt.Println("\nNo orphan files.")
	}
}

func cmdDump(engine *nav.Engine, store *sites.Store, printer *render.Printer) {
	ctx := engine.Context()
	printer.Banner("Dump of internal structures")
	fmt.Println("Columns:   ", printer.Columns())
	fmt.Println("Processing:", ctx.Mode)
	fmt.Println("Base:      ", ctx.Base)
	fmt.Println("Place:     ", ctx.CurrentPlace)
	fmt.Println("\nPaths:")
	printer.List(store.Paths, 0)
	fmt.Println("\nSite URLs:")
	printer.List(store.URLs, 0)
	fmt.Println("\nLinks:")
	printer.RawLinks(ctx.Links)
	fmt.Println("\nHistory:")
	printer.List(ctx.History, ctx.Pos+1)
}

func cmdSet(printer *render.Printer, arg string) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		errorf("usage: set color=true|false")
		return
	}
	switch strings.TrimSpace(key) {
	case "c", "color":
		printer.SetColor(strings.TrimSpace(value) != "false")
	default:
		errorf("invalid set option %q", arg)
	}
}
