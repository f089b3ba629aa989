package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func collectFiles(patterns []string) ([]string, error) {
	files := make([]string, 0)
	for _, pattern := range patterns {
		f, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrap(err, "get file glob")
		}
		files = append(files, f...)
	}
	sort.Strings(files)
	return files, nil
}

// applyFile выполняет миграцию в транзакции и помечает её применённой.
// Уже применённые пропускаются.
func applyFile(ctx context.Context, conn *pgx.Conn, file string) (bool, error) {
	name := filepath.Base(file)

	var applied bool
	if err := conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name,
	).Scan(&applied); err != nil {
		return false, errors.Wrap(err, "check migration")
	}
	if applied {
		return false, nil
	}

	body, err := os.ReadFile(file)
	if err != nil {
		return false, errors.Wrap(err, "read migration")
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return false, errors.Wrap(err, "begin")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, string(body)); err != nil {
		return false, errors.Wrap(err, fmt.Sprintf("exec %s", name))
	}
	if _, err = tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return false, errors.Wrap(err, "mark applied")
	}
	return true, errors.Wrap(tx.Commit(ctx), "commit")
}

func main() {
	viper.SetConfigName(".migrate")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("migrate")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	dsn := viper.GetString("dsn")
	if env := os.Getenv("DATABASE_DSN"); env != "" {
		dsn = env
	}
	if dsn == "" {
		panic("has no dsn in config")
	}
	files, err := collectFiles(viper.GetStringSlice("source"))
	if err != nil {
		panic(err)
	}
	if len(files) == 0 {
		panic("has no migrations in source")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		panic(fmt.Errorf("connect: %w", err))
	}
	defer func() {
		_ = conn.Close(ctx)
	}()

	if _, err = conn.Exec(ctx, migrationsTable); err != nil {
		panic(fmt.Errorf("create schema_migrations: %w", err))
	}
	for _, file := range files {
		applied, aErr := applyFile(ctx, conn, file)
		if aErr != nil {
			panic(fmt.Errorf("apply %s: %w", file, aErr))
		}
		if applied {
			fmt.Printf("%s applied\n", file)
			continue
		}
		fmt.Printf("%s skipped\n", file)
	}
	fmt.Println("done")
}
