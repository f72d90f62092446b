package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/versus/api"
	"github.com/danielhkuo/versus/cliparse"
	"github.com/danielhkuo/versus/selector"
	"github.com/danielhkuo/versus/tui"
	"github.com/danielhkuo/versus/widget"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit code once its deferred cleanup is done.
func run(args []string) int {
	cfg, err := cliparse.ParseClientFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing flags:", err)
		return 2
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening log file:", err)
		return 1
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	checkQuestionRange(ctx, client, cfg)

	sel := selector.New(cfg.MinQuestionID, cfg.MaxQuestionID, nil)
	page := widget.New(client, sel, widget.Options{})

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return printSnapshot(ctx, page, cfg.RequestTimeout)
	}

	if err := runUI(ctx, page); err != nil {
		slog.Error("UI exited", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// checkQuestionRange logs the ids in the selector's range that the server
// does not have.
func checkQuestionRange(ctx context.Context, client *api.Client, cfg cliparse.ClientConfig) {
	ids, err := client.ListQuestions(ctx)
	if err != nil {
		slog.Warn("Could not list questions", "backend", cfg.BackendURL, "error", err)
		return
	}
	var missing []int64
	for id := cfg.MinQuestionID; id <= cfg.MaxQuestionID; id++ {
		if !slices.Contains(ids, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		slog.Warn("Question ids missing on server", "missing", missing)
	}
}

func runUI(ctx context.Context, page *widget.Page) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.New(runCtx, page), tea.WithAltScreen(), tea.WithContext(runCtx))
	page.OnChange(func() { program.Send(tui.Changed{}) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = page.Run(runCtx)
	}()

	_, err := program.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// printSnapshot waits for the first question to load and prints it as plain
// text. It returns the exit code.
func printSnapshot(ctx context.Context, page *widget.Page, timeout time.Duration) int {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout+time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	page.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = page.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for !page.Ready() {
		select {
		case <-changed:
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "Timed out loading question")
			return 1
		}
	}

	fmt.Print(tui.Snapshot(page, time.Now().Add(time.Minute)))
	return 0
}
