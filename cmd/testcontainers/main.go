package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/localnerve/jam-build-breezemeta/internal/containers"
	"github.com/localnerve/jam-build-breezemeta/internal/database"
	"github.com/localnerve/jam-build-breezemeta/internal/models"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Start a database container migrated with the Northwind models, for running
the metadata server against a real database.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file setting DB_TYPE, DB_IMAGE, DB_DATABASE,
DB_APP_USER and DB_APP_PASSWORD. Unset values use postgres defaults.

example
  testcontainers -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	opts := containers.DefaultOptions()
	override(&opts.DBType, "DB_TYPE")
	override(&opts.Image, "DB_IMAGE")
	override(&opts.Database, "DB_DATABASE")
	override(&opts.User, "DB_APP_USER")
	override(&opts.Password, "DB_APP_PASSWORD")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := containers.StartDatabase(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to start database container: %v\n", err)
	}
	defer db.Terminate(context.Background())

	conn, err := db.Connect(ctx, zap.NewNop())
	if err != nil {
		log.Printf("Failed to connect: %v\n", err)
		return
	}
	if err := database.AutoMigrate(conn, models.Northwind()); err != nil {
		log.Printf("Failed to migrate: %v\n", err)
	}
	database.Close(conn)

	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_APP_USER=%s\nDB_APP_PASSWORD=%s\n",
		db.Config.DBType, db.Config.DBHost, db.Config.DBPort, db.Config.DBDatabase, db.Config.DBAppUser, db.Config.DBAppPassword)

	<-ctx.Done()
	log.Printf("\nReceived signal, terminating database container...\n")
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
