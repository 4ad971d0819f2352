package main

import (
	"context"
	"flag"
	"os"

	"github.com/jtech/tasklist/internal/client/api"
	"github.com/jtech/tasklist/internal/client/cli"
)

func main() {

	addr := flag.String("a", "http://localhost:8080", "server base URL")
	flag.Parse()

	ctx := context.Background()

	app := cli.NewApp(api.New(*addr), os.Stdin, os.Stdout)
	app.Run(ctx)
}
