package test

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	database "authservice/internal/adapter/database/sqlite"
)

var testDBCounter atomic.Int64

// findProjectRoot finds the project root directory by looking for go.mod
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens a fresh shared in-memory sqlite database and runs the
// migrations. A single connection keeps every goroutine on the same memory
// database.
func InitTestDB() *database.DB {
	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared", testDBCounter.Add(1))

	db, err := sql.Open("sqlite3", dsn)

	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(findProjectRoot(), "db", "migrations")
	database.RunMigrations(db, migrationsPath)

	return database.WrapDB(db)
}

// InitTestRedis spins up a miniredis and a client against it, both torn
// down with the test.
func InitTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}
