// Command oauth-init runs the one-time OAuth authorization flow for the
// Google Drive backend and saves the resulting token where the finances
// binaries expect it (GOOGLE_OAUTH_TOKEN_FILE, default token.json).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/oauth2"

	"github.com/tzoee/personal-finance-manager-sub001/internal/cli"
	cloudgoogle "github.com/tzoee/personal-finance-manager-sub001/internal/cloud/google"
	"github.com/tzoee/personal-finance-manager-sub001/internal/config"
	"github.com/tzoee/personal-finance-manager-sub001/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := config.Load()

	oauthCfg, err := cloudgoogle.OAuthConfig(cloudgoogle.Credentials{
		ClientFile: cfg.GoogleOAuthClientFile,
		ClientJSON: cfg.GoogleOAuthClientJSON,
	})
	if err != nil {
		logger.Error("OAuth client configuration failed", "error", err)
		os.Exit(1)
	}

	// The redirect lands on a throwaway local server. The OAuth client's
	// authorized redirect URIs must include this address.
	redirectPort := os.Getenv("OAUTH_REDIRECT_PORT")
	if redirectPort == "" {
		redirectPort = "8085"
	}
	oauthCfg.RedirectURL = "http://localhost:" + redirectPort + "/callback"

	codeCh := make(chan string, 1)
	srv := &http.Server{Addr: ":" + redirectPort}
	http.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errStr := r.URL.Query().Get("error"); errStr != "" {
			http.Error(w, "OAuth error: "+errStr, http.StatusBadRequest)
			return
		}
		codeCh <- r.URL.Query().Get("code")
		fmt.Fprintln(w, "You may close this window and return to the terminal.")
		go func() { time.Sleep(500 * time.Millisecond); _ = srv.Close() }()
	})
	go func() { _ = srv.ListenAndServe() }()

	fmt.Printf("Open this URL to authorize:\n%s\n", oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))

	select {
	case code := <-codeCh:
		tok, err := oauthCfg.Exchange(context.Background(), code)
		if err != nil {
			logger.Error("Token exchange failed", "error", err)
			os.Exit(1)
		}
		outFile := cfg.GoogleOAuthTokenFile
		if outFile == "" {
			outFile = "token.json"
		}
		if err := writeToken(outFile, tok); err != nil {
			logger.Error("Token save failed", "error", err, "path", outFile)
			os.Exit(1)
		}
		fmt.Printf("Saved token to %s\n", outFile)
		fmt.Println("Set CLOUD_BACKEND=drive and GOOGLE_OAUTH_TOKEN_FILE to use it.")
	case <-time.After(5 * time.Minute):
		logger.Error("Authorization timed out")
		os.Exit(1)
	case <-signalChan():
		logger.Error("Interrupted")
		os.Exit(1)
	}
}

func writeToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

func signalChan() <-chan os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	return c
}
