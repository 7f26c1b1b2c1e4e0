package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/bootstrap"
	"github.com/yigit/facultyhub/internal/config"
	"github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/seed"
	"github.com/yigit/facultyhub/internal/store"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "facultyctl",
		Usage: "maintain the FacultyHub data directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   bootstrap.DefaultConfigPath,
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "override the configured data directory",
				EnvVars: []string{"STORAGE_DATA_DIR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "verify",
				Usage:  "load every collection file and report unreadable ones",
				Action: verifyAction,
			},
			{
				Name:  "reconcile",
				Usage: "report users without a profile and references to missing records",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repair", Usage: "delete the orphaned users that were found"},
				},
				Action: reconcileAction,
			},
			{
				Name:   "seed",
				Usage:  "create the admin account and, on an empty catalogue, sample data",
				Action: seedAction,
			},
		},
	}
}

// env is what every command needs: the open store and a logger
type env struct {
	cfg    *config.Config
	db     *store.DB
	logger zerolog.Logger
}

func openEnv(c *cli.Context) (*env, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	db, err := bootstrap.SetupStore(c.Context, cfg, lgr)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, logger: lgr}, nil
}

func (e *env) services() (*repositories.Repositories, *services.Services) {
	repos := repositories.NewRepositories(e.db)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      e.cfg.JWT.Secret,
		AccessTokenExp: e.cfg.AccessTokenTTL(),
		TokenIssuer:    e.cfg.JWT.Issuer,
	})
	return repos, services.NewServices(repos, join.New(e.db), jwtService, nil, e.logger)
}

func verifyAction(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	if failed := verify(c.Context, e.db, c.App.Writer); failed > 0 {
		return cli.Exit(fmt.Sprintf("%d collection(s) could not be read", failed), 1)
	}
	return nil
}

// verify reads every collection and prints one line per collection. It
// returns the number of collections that failed to load.
func verify(ctx context.Context, db *store.DB, w io.Writer) int {
	failed := 0
	for _, kind := range store.AllKinds {
		docs, err := db.Documents(ctx, kind)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%-20s FAILED  %v\n", kind, err)
			continue
		}
		fmt.Fprintf(w, "%-20s ok      %d records\n", kind, len(docs))
	}
	return failed
}

func reconcileAction(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	_, svc := e.services()

	var report *services.ReconcileReport
	if c.Bool("repair") {
		report, err = svc.ReconcileService.Repair(c.Context)
	} else {
		report, err = svc.ReconcileService.Scan(c.Context)
	}
	if err != nil {
		return err
	}
	return printReport(c.App.Writer, report)
}

func printReport(w io.Writer, report *services.ReconcileReport) error {
	if report.Clean() {
		_, err := fmt.Fprintln(w, "no inconsistencies found")
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func seedAction(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	repos, svc := e.services()
	return seed.CreateDefaultData(c.Context, repos, svc, e.logger)
}
