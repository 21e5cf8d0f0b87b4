package main

import (
	_ "embed"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/skyraid/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("failed to load .env", "err", err)
	}
	logger, err := config.NewLogger(os.Stderr, "skyraid-web")
	if err != nil {
		logger.Fatal("invalid log level", "err", err)
	}

	host := config.GetEnv("SKYRAID_WEB_HOST", defaultHost)
	port := config.GetEnv("SKYRAID_WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SKYRAID_SSH_DISPLAY_HOST", "your-server.com")

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(sshHost),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting web server", "url", fmt.Sprintf("http://%s", addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with the SSH host filled in.
func newHandler(sshHost string) http.Handler {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", html.EscapeString(sshHost))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	return mux
}
