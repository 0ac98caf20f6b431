// Command crud-mcp-http serves the movie and task tools over HTTP.
package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"crud-mcp/internal/server"
)

const defaultAPIBase = "https://basicrud95019501.onrender.com"

func main() {
	_ = godotenv.Load()

	log := logrus.New()

	cfg := server.Config{
		Port:         getEnv("PORT", "3000"),
		Token:        os.Getenv("MCP_TOKEN"),
		MovieAPIBase: getEnv("MOVIE_API_BASE", defaultAPIBase),
		TaskAPIBase:  getEnv("TASK_API_BASE", defaultAPIBase),
	}
	if cfg.Token == "" {
		log.Warn("MCP_TOKEN not set; endpoints will be open. Set MCP_TOKEN to secure.")
	}

	srv := server.New(cfg, log)
	log.Infof("starting MCP HTTP server on :%s", cfg.Port)

	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")
	if certFile != "" && keyFile != "" {
		log.Info("TLS enabled: using provided certificate and key")
		if err := http.ListenAndServeTLS(":"+cfg.Port, certFile, keyFile, srv.Router()); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
