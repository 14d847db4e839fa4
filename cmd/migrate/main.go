package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"referhub/internal/config"
	"referhub/internal/database/migration"
	dbpostgres "referhub/internal/database/postgres"
	"referhub/internal/database/seeder"

	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded schema")
	seed := flag.Bool("seed", true, "create the admin account from ADMIN_EMAIL / ADMIN_PASSWORD")
	demo := flag.Bool("demo", false, "also load a demo poster with sample jobs")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Dir: *dir, Logger: log.Default()}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if !*seed && !*demo {
		return
	}
	var seeders []seeder.Seeder
	if *seed {
		seeders = append(seeders, seeder.AdminSeeder{
			Email:       cfg.Admin.Email,
			Password:    cfg.Admin.Password,
			DisplayName: cfg.Admin.Name,
			Logger:      log.Default(),
		})
	}
	if *demo {
		seeders = append(seeders, seeder.DemoSeeder{Logger: log.Default()})
	}
	if err := (seeder.Runner{Seeders: seeders, Logger: log.Default()}).Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
