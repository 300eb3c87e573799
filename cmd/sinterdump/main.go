// main.go: snapshots every currently interned string to a SQLite file
//
// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/ickk/sinter"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: sinterdump <output.sqlite>")
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "sinterdump:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	ctx := context.Background()

	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	// The process embedding sinterdump as a library would have already
	// interned its own content; a standalone run only has whatever this
	// package itself interns, so seed a handful of entries to make the
	// export non-empty when exercised on its own.
	for _, s := range []string{"sinterdump", path} {
		sinter.Intern(s)
	}

	return exportSnapshot(ctx, db, sinter.CollectSlice())
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS interned_strings (
			id    INTEGER PRIMARY KEY,
			hash  INTEGER NOT NULL,
			len   INTEGER NOT NULL,
			value TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

func exportSnapshot(ctx context.Context, db *sql.DB, handles []sinter.Handle) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export txn: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM interned_strings"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO interned_strings (hash, len, value) VALUES (?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range handles {
		// int64 holds every bit pattern of the uint64 hash; SQLite has no
		// unsigned column type, so this is the usual signed-reinterpret
		// round trip, recoverable on read with the same cast.
		if _, err := stmt.ExecContext(ctx, int64(h.Hash()), h.Len(), h.String()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %q: %w", h.String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export txn: %w", err)
	}

	fmt.Printf("wrote %d interned strings\n", len(handles))
	return nil
}
