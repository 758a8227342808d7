//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	mysqlrepo "review_dashboard/internal/storage/mysql"
)

// ---------- small helpers ----------
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_Approvals(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=reviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "reviews")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange — two decisions, the first one overwritten
	if err := repo.Set(ctx, 7453, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, 7453, false); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	if err := repo.Set(ctx, 1000000000, true); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Assert
	approved, ok, err := repo.Get(ctx, 7453)
	if err != nil || !ok || approved {
		t.Fatalf("Get(7453) = %v, %v, %v", approved, ok, err)
	}
	got, err := repo.GetMany(ctx, []int64{7453, 1000000000, 42})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 || got[7453] || !got[1000000000] {
		t.Fatalf("GetMany = %v", got)
	}

	// Toggle back and reset
	if err := repo.Set(ctx, 7453, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if approved, _, _ := repo.Get(ctx, 7453); !approved {
		t.Fatalf("toggle not persisted")
	}
	if err := repo.Delete(ctx, 7453); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, 7453); ok {
		t.Fatalf("expected no decision after Delete")
	}

	if err := repo.LogFailure(ctx, "google:abc", "semantic", "REQUEST_DENIED"); err != nil {
		t.Fatalf("LogFailure: %v", err)
	}
	if err := repo.LogFailure(ctx, "google:abc", "semantic", "REQUEST_DENIED again"); err != nil {
		t.Fatalf("LogFailure (dup): %v", err)
	}
}
