package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/seed"
	"github.com/yigit/facultyhub/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func runApp(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	argv := append([]string{"facultyctl", "--config", filepath.Join(dir, "none.yaml"), "--data-dir", dir}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func TestVerifyReportsCorruptCollection(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, db.Init(context.Background()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.Courses.FileName()), []byte("{not json"), 0o644))

	var out bytes.Buffer
	failed := verify(context.Background(), db, &out)

	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "courses")
	assert.Contains(t, out.String(), "FAILED")
	assert.Contains(t, out.String(), "users")
}

func TestSeedThenVerifyAndReconcile(t *testing.T) {
	dir := t.TempDir()

	_, err := runApp(t, dir, "seed")
	require.NoError(t, err)

	out, err := runApp(t, dir, "verify")
	require.NoError(t, err)
	assert.NotContains(t, out, "FAILED")

	out, err = runApp(t, dir, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "no inconsistencies found")

	// seeding twice leaves the data alone
	_, err = runApp(t, dir, "seed")
	require.NoError(t, err)
	db, err := store.Open(dir)
	require.NoError(t, err)
	users, err := db.Documents(context.Background(), store.Users)
	require.NoError(t, err)
	admins := 0
	for _, u := range users {
		if u["email"] == seed.AdminEmail {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestReconcileRepairRemovesOrphanUser(t *testing.T) {
	dir := t.TempDir()
	orphan := `[{"_id":{"$oid":"aaaaaaaaaaaaaaaaaaaaaaaa"},"email":"lost@faculty.edu","password":"x","firstName":"L","lastName":"O","role":"student","createdAt":"2024-01-01T00:00:00.000Z","updatedAt":"2024-01-01T00:00:00.000Z"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.Users.FileName()), []byte(orphan), 0o644))

	out, err := runApp(t, dir, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "aaaaaaaaaaaaaaaaaaaaaaaa")

	out, err = runApp(t, dir, "reconcile", "--repair")
	require.NoError(t, err)
	assert.Contains(t, out, `"removed": 1`)

	out, err = runApp(t, dir, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "no inconsistencies found")
}
