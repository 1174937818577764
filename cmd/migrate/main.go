// Command migrate manages the saleflow database schema.
//
//	migrate [-path dir] [-log-level level] <command> [args]
//
// Commands: up, down, step <n>, version, force <version>, create <name> [description], list.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/erp/saleflow/internal/infrastructure/config"
	"github.com/erp/saleflow/internal/infrastructure/logger"
	"github.com/erp/saleflow/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var errUsage = errors.New("usage")

func main() {
	path := flag.String("path", "", "migrations directory (default ./migrations)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	dir, err := resolveMigrationsPath(*path)
	if err != nil {
		log.Fatal("Invalid migrations path", zap.Error(err))
	}

	if err := run(log, dir, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}

func run(log *zap.Logger, dir string, args []string) error {
	command, rest := args[0], args[1:]
	log.Debug("Running migration command", zap.String("command", command), zap.String("path", dir))

	switch command {
	case "create":
		if len(rest) == 0 {
			return fmt.Errorf("%w: create <name> [description]", errUsage)
		}
		description := ""
		if len(rest) > 1 {
			description = rest[1]
		}
		mf, err := migration.CreateMigration(dir, rest[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
		return nil
	case "list":
		names, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	return withMigrator(log, dir, func(m *migration.Migrator) error {
		switch command {
		case "up":
			return m.Up()
		case "down":
			return m.Down()
		case "step":
			n, err := intArg(rest)
			if err != nil {
				return err
			}
			return m.Steps(n)
		case "force":
			version, err := intArg(rest)
			if err != nil {
				return err
			}
			log.Warn("Forcing migration version", zap.Int("version", version))
			return m.Force(version)
		case "version":
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
			return nil
		default:
			return fmt.Errorf("%w: unknown command %q", errUsage, command)
		}
	})
}

func withMigrator(log *zap.Logger, dir string, fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, dir, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}

// resolveMigrationsPath prefers the flag, then ./migrations, then the directory two levels above the binary
func resolveMigrationsPath(path string) (string, error) {
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing number", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errUsage, args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: migrate [-path dir] [-log-level level] <command> [args]

Commands:
  up                         apply all pending migrations
  down                       roll back all migrations
  step <n>                   apply (n > 0) or roll back (n < 0) n migrations
  version                    print the current schema version
  force <version>            set the version without running migrations
  create <name> [desc]       create a new up/down migration pair
  list                       list migration files
`)
}
