// cmd/tools/catalog-import/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"foodfinder/internal/common/config"
	"foodfinder/internal/common/database"
	"foodfinder/internal/models"
	"foodfinder/pkg/dataset"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("file", "data/venues.json", "Path to venue dataset file")

	loadCmd := flag.NewFlagSet("load", flag.ExitOnError)
	loadPath := loadCmd.String("file", "data/venues.json", "Path to venue dataset file")
	loadTable := loadCmd.String("table", "venues", "Target Postgres table")
	loadTruncate := loadCmd.Bool("truncate", false, "Truncate the table before loading")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		venues, err := dataset.Load(*validatePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: %s contains %d valid venues\n", *validatePath, len(venues))

	case "load":
		loadCmd.Parse(os.Args[2:])
		if err := load(*loadPath, *loadTable, *loadTruncate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		help()
		os.Exit(1)
	}
}

func help() {
	fmt.Println("Usage: catalog-import <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  validate  Validate a venue dataset file against the schema")
	fmt.Println("  load      Validate a dataset file and upsert it into Postgres")
	fmt.Println()
	fmt.Println("Run 'catalog-import <command> -h' for command options.")
}

func load(path, table string, truncate bool) error {
	venues, err := dataset.Load(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	if err := ensureTable(ctx, pg, table); err != nil {
		return err
	}
	if truncate {
		if _, err := pg.Exec(ctx, fmt.Sprintf("TRUNCATE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	for _, v := range venues {
		if err := upsert(ctx, pg, table, v); err != nil {
			return fmt.Errorf("upsert venue %s: %w", v.ID, err)
		}
	}

	fmt.Printf("Loaded %d venues into %s\n", len(venues), table)
	return nil
}

func ensureTable(ctx context.Context, pg *database.PostgresClient, table string) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			address       TEXT,
			lat           DOUBLE PRECISION NOT NULL,
			lon           DOUBLE PRECISION NOT NULL,
			cuisine       JSONB NOT NULL DEFAULT '[]',
			price_tier    TEXT,
			schedule      JSONB NOT NULL DEFAULT '[]',
			rating        DOUBLE PRECISION,
			reviews_count INTEGER
		)`, table)
	if _, err := pg.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func upsert(ctx context.Context, pg *database.PostgresClient, table string, v models.Venue) error {
	cuisine, err := json.Marshal(v.CuisineTags)
	if err != nil {
		return err
	}
	schedule, err := json.Marshal(v.OpenHours)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, address, lat, lon, cuisine, price_tier, schedule, rating, reviews_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			cuisine = EXCLUDED.cuisine,
			price_tier = EXCLUDED.price_tier,
			schedule = EXCLUDED.schedule,
			rating = EXCLUDED.rating,
			reviews_count = EXCLUDED.reviews_count`, table)

	_, err = pg.Exec(ctx, query,
		v.ID, v.Name, v.Address, v.Location.Lat, v.Location.Lon,
		cuisine, v.PriceTier.String(), schedule, v.Rating, v.ReviewCount,
	)
	return err
}
