package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/matejv/surgiset/internal/config"
	"github.com/matejv/surgiset/internal/storage"
	"github.com/matejv/surgiset/internal/store"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR
// goes to stderr.
func setupLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	handler := &levelRouter{
		stdout: slog.NewTextHandler(io.Writer(os.Stdout), opts),
		stderr: slog.NewTextHandler(io.Writer(os.Stderr), opts),
	}
	slog.SetDefault(slog.New(handler))
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: surgiset <command> [flags]

Commands:
  add         add instruments to the inventory
  list        list the inventory
  sets        list sets and their allocations
  create-set  create a new empty set
  allocate    move inventory quantity into a set
  return      move set quantity back to inventory
  delete-set  delete a set, returning its allocations
  remove      remove an instrument from the inventory
  wishlist    toggle an instrument's wishlist flag
  audit       export the checklist audit document
  search      search the reference catalog
  theme       toggle the dark-mode preference

Environment:
  SURGISET_DB        SQLite database path (default: surgiset.sqlite3)
  SURGISET_DATA_DIR  plain-file storage directory (default: surgiset-data)
  SURGISET_STORAGE   backend: sqlite, file, or auto (default: auto)
`)
}

func main() {
	setupLogger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = cmdAdd(os.Args[2:])
	case "list":
		err = cmdList(os.Args[2:])
	case "sets":
		err = cmdSets(os.Args[2:])
	case "create-set":
		err = cmdCreateSet(os.Args[2:])
	case "allocate":
		err = cmdAllocate(os.Args[2:])
	case "return":
		err = cmdReturn(os.Args[2:])
	case "delete-set":
		err = cmdDeleteSet(os.Args[2:])
	case "remove":
		err = cmdRemove(os.Args[2:])
	case "wishlist":
		err = cmdWishlist(os.Args[2:])
	case "audit":
		err = cmdAudit(os.Args[2:])
	case "search":
		err = cmdSearch(os.Args[2:])
	case "theme":
		err = cmdTheme(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// openStore opens the configured backend and restores the inventory store.
// The returned cleanup closes the store (flushing pending writes) and the
// backend.
func openStore(ctx context.Context) (*store.Store, storage.Backend, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	backend, err := storage.Open(cfg.Storage, cfg.DBPath, cfg.DataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	s, err := store.Open(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		s.Close()
		backend.Close()
	}
	return s, backend, cleanup, nil
}

// openBackend opens just the storage backend, for commands that do not need
// the inventory store.
func openBackend() (storage.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(cfg.Storage, cfg.DBPath, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return backend, nil
}
