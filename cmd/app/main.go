package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	s3blob "github.com/anilpal6795/crime-linker/internal/adapters/blob/s3"
	"github.com/anilpal6795/crime-linker/internal/adapters/db/store"
	gqlapi "github.com/anilpal6795/crime-linker/internal/adapters/graphql"
	httpadapter "github.com/anilpal6795/crime-linker/internal/adapters/http"
	rpcadapter "github.com/anilpal6795/crime-linker/internal/adapters/rpcjson"
	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/config"
	"github.com/anilpal6795/crime-linker/internal/domain"
	"github.com/anilpal6795/crime-linker/internal/logger"
	"github.com/anilpal6795/crime-linker/internal/logger/console"
	"github.com/anilpal6795/crime-linker/internal/metrics"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	config.LoadEnv()
	env := config.FromEnv()
	logger.Init(console.New(console.Params{Debug: env.Debug}))

	root := &cli.Command{
		Name:  "crimelinker",
		Usage: "Crime linkage server and CLI",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Value: env.Debug, Usage: "verbose logging"},
			&cli.StringFlag{Name: "transport", Value: transportUDS, Usage: "client transport: uds (JSON-RPC) or http (GraphQL)"},
			&cli.StringFlag{Name: "server", Value: serverURL(env.Addr), Usage: "server base URL for --transport http"},
			&cli.StringFlag{Name: "socket", Value: env.RPCSocket, Usage: "JSON-RPC unix socket path"},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") != env.Debug {
				logger.Init(console.New(console.Params{Debug: c.Bool("debug")}))
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			serverCommand(env),
			migrateCommand(env),
			seedCommand(env),
			peopleCommand(),
			vehiclesCommand(),
			incidentsCommand(),
			casesCommand(),
			relationsCommand(),
			graphCommand(),
			statsCommand(),
			statusCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}

func dbFlags(env config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db-driver", Value: env.DBDriver, Usage: "sqlite or postgres"},
		&cli.StringFlag{Name: "db-dsn", Value: env.DBDSN, Usage: "SQLite path or Postgres DSN"},
	}
}

func serverCommand(env config.Config) *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run the GraphQL HTTP server and the JSON-RPC socket",
		Flags: append(dbFlags(env),
			&cli.StringFlag{Name: "addr", Value: env.Addr, Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "rpc-socket", Value: env.RPCSocket, Usage: "JSON-RPC unix socket path"},
			&cli.StringFlag{Name: "evidence-bucket", Value: env.Evidence.Bucket, Usage: "S3 bucket for evidence files (empty disables uploads)"},
			&cli.StringFlag{Name: "evidence-region", Value: env.Evidence.Region},
			&cli.StringFlag{Name: "evidence-endpoint", Value: env.Evidence.Endpoint, Usage: "custom S3 endpoint, e.g. MinIO"},
			&cli.BoolFlag{Name: "evidence-path-style", Value: env.Evidence.PathStyle},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, config.Config{
				Addr:      c.String("addr"),
				RPCSocket: c.String("rpc-socket"),
				DBDriver:  c.String("db-driver"),
				DBDSN:     c.String("db-dsn"),
				Debug:     c.Bool("debug"),
				Evidence: config.Evidence{
					Bucket:    c.String("evidence-bucket"),
					Region:    c.String("evidence-region"),
					Endpoint:  c.String("evidence-endpoint"),
					PathStyle: c.Bool("evidence-path-style"),
				},
			})
		},
	}
}

func openDatabase(ctx context.Context, driver, dsn string) (*gorm.DB, func(), error) {
	db, err := store.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := store.RunMigrations(ctx, db); err != nil {
		closeFn()
		return nil, nil, err
	}
	return db, closeFn, nil
}

func runServer(ctx context.Context, cfg config.Config) error {
	db, closeDB, err := openDatabase(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer closeDB()

	var opts []application.Option
	if cfg.Evidence.Enabled() {
		blobs, err := s3blob.New(ctx, s3blob.Config{
			Bucket:    cfg.Evidence.Bucket,
			Region:    cfg.Evidence.Region,
			Endpoint:  cfg.Evidence.Endpoint,
			PathStyle: cfg.Evidence.PathStyle,
		})
		if err != nil {
			return fmt.Errorf("evidence storage: %w", err)
		}
		opts = append(opts, application.WithBlobStore(blobs))
		logger.Info("evidence storage enabled", "bucket", cfg.Evidence.Bucket, "endpoint", cfg.Evidence.Endpoint)
	}

	service := application.NewCaseService(store.NewRepository(db), opts...)
	m := metrics.New()
	schema, err := gqlapi.NewSchema(service, gqlapi.WithMetrics(m))
	if err != nil {
		return err
	}

	router := httpadapter.NewRouter(service, schema, m)
	srv := &http.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	rpcSrv, err := rpcadapter.Start(cfg.RPCSocket, service, rpcadapter.WithMetrics(m))
	if err != nil {
		return err
	}

	defer func() {
		_ = rpcSrv.Close()
	}()
	logger.Info("json-rpc listening", "socket", "unix://"+cfg.RPCSocket)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrateCommand(env config.Config) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations and print the schema version",
		Flags: dbFlags(env),
		Action: func(ctx context.Context, c *cli.Command) error {
			db, closeDB, err := openDatabase(ctx, c.String("db-driver"), c.String("db-dsn"))
			if err != nil {
				return err
			}
			defer closeDB()
			version, err := store.MigrationVersion(ctx, db)
			if err != nil {
				return err
			}
			fmt.Printf("schema version %d\n", version)
			return nil
		},
	}
}

func seedCommand(env config.Config) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the demo fixture set into an empty database",
		Flags: append(dbFlags(env), &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}),
		Action: func(ctx context.Context, c *cli.Command) error {
			db, closeDB, err := openDatabase(ctx, c.String("db-driver"), c.String("db-dsn"))
			if err != nil {
				return err
			}
			defer closeDB()
			out, err := application.NewCaseService(store.NewRepository(db)).Seed(ctx)
			if err != nil {
				return err
			}
			logger.Info("database seeded", "incident", out.IncidentID, "case", out.CaseID)
			if c.Bool("json") {
				return printJSON(out)
			}
			printSeedResult(out)
			return nil
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}
}

func searchFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{&cli.StringFlag{Name: "q", Usage: "case-insensitive search"}, jsonFlag()}, extra...)
}

func flaggedOf(c *cli.Command) *bool {
	if !c.IsSet("flagged") {
		return nil
	}
	v := c.Bool("flagged")
	return &v
}

// canonical normalizes an enum flag locally so both transports receive the
// canonical spelling.
func canonical[T ~string](c *cli.Command, name string, parse func(string) (T, error)) (string, error) {
	raw := c.String(name)
	if raw == "" {
		return "", nil
	}
	v, err := parse(raw)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func peopleCommand() *cli.Command {
	return &cli.Command{
		Name:  "people",
		Usage: "People commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List people",
				Flags: searchFlags(&cli.BoolFlag{Name: "flagged", Usage: "persons of interest only"}),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					var out []domain.Person
					if err := doPeopleList(ctx, cfg, listQuery{Flagged: flaggedOf(c), Q: c.String("q")}, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printPeople(out)
					return nil
				},
			},
		},
	}
}

func vehiclesCommand() *cli.Command {
	return &cli.Command{
		Name:  "vehicles",
		Usage: "Vehicle commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List vehicles",
				Flags: searchFlags(&cli.BoolFlag{Name: "flagged", Usage: "vehicles of interest only"}),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					var out []domain.Vehicle
					if err := doVehiclesList(ctx, cfg, listQuery{Flagged: flaggedOf(c), Q: c.String("q")}, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVehicles(out)
					return nil
				},
			},
		},
	}
}

func incidentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "incidents",
		Usage: "Incident commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List incidents",
				Flags: searchFlags(
					&cli.StringFlag{Name: "status", Usage: "OPEN, UNDER_INVESTIGATION or CLOSED"},
					&cli.StringFlag{Name: "event-type", Usage: "THEFT, BURGLARY, ..."},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					status, err := canonical(c, "status", domain.ParseStatus)
					if err != nil {
						return err
					}
					eventType, err := canonical(c, "event-type", domain.ParseEventType)
					if err != nil {
						return err
					}
					var out []domain.Incident
					q := listQuery{Status: status, EventType: eventType, Q: c.String("q")}
					if err := doIncidentsList(ctx, cfg, q, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printIncidents(out)
					return nil
				},
			},
			{
				Name:  "recent",
				Usage: "Most recent incidents by date",
				Flags: []cli.Flag{&cli.IntFlag{Name: "limit", Value: 5}, jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					var out []domain.Incident
					if err := doIncidentsRecent(ctx, cfg, int(c.Int("limit")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printIncidents(out)
					return nil
				},
			},
		},
	}
}

func casesCommand() *cli.Command {
	return &cli.Command{
		Name:  "cases",
		Usage: "Case commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cases",
				Flags: searchFlags(
					&cli.StringFlag{Name: "status", Usage: "OPEN, UNDER_INVESTIGATION or CLOSED"},
					&cli.StringFlag{Name: "priority", Usage: "LOW, MEDIUM or HIGH"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					status, err := canonical(c, "status", domain.ParseStatus)
					if err != nil {
						return err
					}
					priority, err := canonical(c, "priority", domain.ParsePriority)
					if err != nil {
						return err
					}
					var out []domain.Case
					if err := doCasesList(ctx, cfg, listQuery{Status: status, Priority: priority, Q: c.String("q")}, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCases(out)
					return nil
				},
			},
		},
	}
}

// relationArgs reads "<kind> <id> <relation>" and validates the pair against
// the registry before anything goes over the wire.
func relationArgs(c *cli.Command) (domain.Relation, string, error) {
	if c.NArg() < 3 {
		return domain.Relation{}, "", fmt.Errorf("usage: %s <kind> <id> <relation>", c.Name)
	}
	kind, err := domain.ParseKind(c.Args().Get(0))
	if err != nil {
		return domain.Relation{}, "", err
	}
	rel, err := domain.LookupRelation(kind, c.Args().Get(2))
	if err != nil {
		return domain.Relation{}, "", err
	}
	return rel, c.Args().Get(1), nil
}

func relationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "relations",
		Usage: "Read or replace the counterparts of one relation",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "List related entities",
				ArgsUsage: "<kind> <id> <relation>",
				Flags:     []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					rel, id, err := relationArgs(c)
					if err != nil {
						return err
					}
					out, err := doRelationsGet(ctx, cfg, rel, id)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printEntities(out)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Replace the whole related set; no ids clears it",
				ArgsUsage: "<kind> <id> <relation> [ids...]",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					rel, id, err := relationArgs(c)
					if err != nil {
						return err
					}
					ids := c.Args().Slice()[3:]
					if err := doRelationsSet(ctx, cfg, rel, id, ids); err != nil {
						return err
					}
					fmt.Printf("%s of %s now has %d entries\n", rel, id, len(ids))
					return nil
				},
			},
		},
	}
}

func graphCommand() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Usage:     "Show the one-hop connection graph of an entity",
		ArgsUsage: "<kind> <id>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := cliConfigFrom(c)
			if err != nil {
				return err
			}
			if c.NArg() < 2 {
				return errors.New("usage: graph <kind> <id>")
			}
			kind, err := domain.ParseKind(c.Args().Get(0))
			if err != nil {
				return err
			}
			var out domain.Graph
			if err := doGraph(ctx, cfg, kind, c.Args().Get(1), &out); err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			printGraph(out)
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Dashboard statistics",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := cliConfigFrom(c)
			if err != nil {
				return err
			}
			var out []domain.DashboardStat
			if err := doStats(ctx, cfg, &out); err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			printStats(out)
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Case status updates",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Append a status update to a case",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "case-id", Required: true},
					&cli.StringFlag{Name: "message", Required: true},
					&cli.StringFlag{Name: "user-id", Required: true},
					jsonFlag(),
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := cliConfigFrom(c)
					if err != nil {
						return err
					}
					var out domain.StatusUpdate
					if err := doStatusAdd(ctx, cfg, c.String("case-id"), c.String("message"), c.String("user-id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printStatusUpdate(out)
					return nil
				},
			},
		},
	}
}
