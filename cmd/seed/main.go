package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/marcusball/class-scheduler/internal/config"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/repository"
	"github.com/marcusball/class-scheduler/internal/seed"
	"github.com/marcusball/class-scheduler/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var classes int
	var sections int
	var file string
	var name string

	flag.IntVar(&op, "op", 0, "operation (1: insert random catalogs, 2: insert the sample catalog, 3: import a sections CSV)")
	flag.IntVar(&n, "n", 5, "number of catalogs to insert")
	flag.IntVar(&classes, "classes", 5, "classes per random catalog")
	flag.IntVar(&sections, "sections", 3, "maximum sections per random class")
	flag.StringVar(&file, "file", "./internal/seed/data/sections.csv", "sections CSV to import")
	flag.StringVar(&name, "name", "Imported term", "name of the imported catalog")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("cannot create the database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 || classes <= 0 || sections <= 0 {
			slog.Error("counts must be positive", slog.Int("n", n), slog.Int("classes", classes), slog.Int("sections", sections))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			options := utils.GenerateRandomCatalog(classes, sections)
			c := &domain.Catalog{
				Name:        utils.CatalogName(options),
				Description: "random catalog",
				Options:     *options,
			}

			if err := repo.CreateCatalog(c); err != nil {
				slog.Error("cannot insert catalog", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("catalogs inserted", slog.Int("count", cnt))
	case 2:
		seed.SeedSampleCatalog(repo)
	case 3:
		seed.SeedSectionsCSV(repo, file, name)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
