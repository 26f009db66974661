package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/akamensky/argparse"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pursuit/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	parser := argparse.NewParser("pursuit-server", "Hosts pursuit runs over websocket")
	configPath := parser.String("c", "config", &argparse.Options{Help: "path to a YAML config file"})
	verbose := parser.Flag("v", "verbose", &argparse.Options{Help: "debug logging"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(2)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gameServer, err := server.NewGameServer(cfg)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	s := Server{GameServer: gameServer}
	go s.GameServer.Loop()
	s.routes()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, s.router))
}
