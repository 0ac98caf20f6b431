// Command crud-mcp serves the movie and task tools to an MCP host over
// stdio.
package main

import (
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"crud-mcp/internal/server"
)

const defaultAPIBase = "https://basicrud95019501.onrender.com"

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	// stdout carries the protocol stream; all logging goes to stderr.
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if os.Getenv("DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	movieBase := getEnv("MOVIE_API_BASE", defaultAPIBase)
	taskBase := getEnv("TASK_API_BASE", defaultAPIBase)

	d := server.NewDispatcher(movieBase, taskBase, log)
	log.WithFields(logrus.Fields{"movie_api": movieBase, "task_api": taskBase}).
		Info("starting MCP stdio server")
	if err := mcpserver.ServeStdio(server.NewMCPServer(d, version)); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
