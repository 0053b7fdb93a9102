package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/xavierca1/lead-intake/internal/client"
	"github.com/xavierca1/lead-intake/internal/dashboard"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("a", envOr("LEADS_API_URL", "http://localhost:8080"), "lead service base URL")
	email := flag.String("e", os.Getenv("ADMIN_EMAIL"), "login email")
	password := flag.String("p", os.Getenv("ADMIN_PASSWORD"), "login password")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.NewHTTPClient(*addr)
	app := dashboard.NewApp(api, api, os.Stdout)

	fmt.Printf("Lead dashboard on %s (type 'help' for commands)\n", *addr)
	if *email != "" && *password != "" {
		if err := app.Login(ctx, *email, *password); err != nil {
			fmt.Fprintln(os.Stderr, "login:", err)
		}
	}

	app.Run(ctx, os.Stdin)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
