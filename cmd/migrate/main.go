package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-compensation-go/internal/config"
	"github.com/cmlabs-hris/hris-compensation-go/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const usage = `usage: migrate [up|down|status|version|reset]`

func main() {
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error opening database:", err)
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Println("Error setting dialect:", err)
		os.Exit(1)
	}

	if err := goose.RunContext(context.Background(), command, db, "."); err != nil {
		fmt.Printf("migrate %s: %v\n", command, err)
		os.Exit(1)
	}
}
