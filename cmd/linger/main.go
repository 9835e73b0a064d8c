package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/linger-lang/linger"
	"github.com/linger-lang/linger/interp"
)

func main() {
	var (
		watch    bool
		maxDepth int
	)

	rootCmd := &cobra.Command{
		Use:   "linger [file]",
		Short: "Run Linger programs",
		Long: `Run Linger programs.

Reads the program from the given file, from stdin when the file is "-",
or from piped stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return run(file, watch, maxDepth)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the program when the file changes")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", interp.DefaultMaxDepth, "Maximum call nesting depth")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, watch bool, maxDepth int) error {
	source, err := readSource(file)
	if err != nil {
		return err
	}

	opts := interp.Options{MaxDepth: maxDepth}
	if !watch {
		return runOnce(os.Stdout, source, opts)
	}
	if file == "" || file == "-" {
		return fmt.Errorf("--watch requires a file argument")
	}

	if err := runOnce(os.Stdout, source, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return watchAndRerun(file, opts)
}

// runOnce runs the program and prints the value of its main body to out.
// Void results are suppressed so programs that only print don't get a
// trailing "<void>" line.
func runOnce(out io.Writer, source string, opts interp.Options) error {
	value, err := linger.RunWith(source, opts)
	if err != nil {
		return err
	}
	if _, void := value.(*interp.Void); !void {
		fmt.Fprintln(out, value.Display())
	}
	return nil
}

// watchAndRerun re-runs the program on every write to its file. Watching
// the directory instead of the file keeps the watch alive across editors
// that replace the file on save.
func watchAndRerun(file string, opts interp.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("error watching %s: %w", dir, err)
	}

	target, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			source, err := readSource(file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if err := runOnce(os.Stdout, source, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			fmt.Fprintln(os.Stderr)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: watch: %v\n", err)
		}
	}
}

// readSource handles the three input modes: an explicit file, explicit
// stdin with "-", and piped stdin when no file is given.
func readSource(file string) (string, error) {
	if file == "-" {
		return readAll(os.Stdin)
	}
	if file == "" {
		if !hasPipedInput() {
			return "", fmt.Errorf("no input: give a file argument or pipe a program to stdin")
		}
		return readAll(os.Stdin)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", file, err)
	}
	return string(data), nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}

// hasPipedInput detects if there's data piped to stdin
func hasPipedInput() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
