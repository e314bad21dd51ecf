package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/marlowtransit/shiftboard/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".shiftboard/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
)

// ScopeSheets is the only Google scope the publisher needs.
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

var (
	tokenCache   *oauth2.Token
	tokenCacheMu sync.Mutex
)

// GetOAuthConfig creates an oauth2 config from the OAuth client configuration,
// requesting the spreadsheet scope and redirecting to the local callback
// server.
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// GetTokenWithFlow returns a usable OAuth token, in order of preference: the
// in-memory cache, the on-disk token for the environment (refreshed if
// expired), or a fresh browser authorization flow. Only one flow runs at a
// time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, env string) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if tokenCache != nil && tokenCache.Valid() {
		return tokenCache, nil
	}

	fileToken, err := LoadTokenFromFile(env)
	if err != nil {
		fmt.Printf("Warning: failed to load token from file: %v\n", err)
	}

	if fileToken != nil {
		if fileToken.Valid() {
			tokenCache = fileToken
			return fileToken, nil
		}
		if fileToken.RefreshToken != "" {
			refreshedToken, err := oauthConfig.TokenSource(ctx, fileToken).Token()
			if err == nil && refreshedToken.Valid() {
				if err := SaveTokenToFile(env, refreshedToken); err != nil {
					fmt.Printf("Warning: failed to save refreshed token: %v\n", err)
				}
				tokenCache = refreshedToken
				return refreshedToken, nil
			}
		}
	}

	fmt.Println("No valid token found - starting OAuth flow")

	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := SaveTokenToFile(env, token); err != nil {
		fmt.Printf("Warning: failed to save token to file: %v\n", err)
	}

	tokenCache = token
	return token, nil
}

// listenForAuthCallback starts a local HTTP server and waits for the OAuth
// redirect carrying the authorization code.
func listenForAuthCallback(ctx context.Context) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Authorization successful!</h1><p>You can close this window.</p></body></html>`)

		codeChan <- code
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", AuthPort),
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error
	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}
	return code, nil
}

// ClearToken clears the in-memory token cache.
func ClearToken() {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()
	tokenCache = nil
}

func getTokenFilePath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, tokenDirName, fmt.Sprintf("token-%s.json", env)), nil
}

// LoadTokenFromFile loads the persisted token for the environment. A missing
// file is not an error; it just means no cached token.
func LoadTokenFromFile(env string) (*oauth2.Token, error) {
	tokenPath, err := getTokenFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tokenPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// SaveTokenToFile persists the token for the environment with owner-only
// permissions.
func SaveTokenToFile(env string, token *oauth2.Token) error {
	tokenPath, err := getTokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(tokenPath), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(tokenPath, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// DeleteTokenFile removes the persisted token for the environment.
func DeleteTokenFile(env string) error {
	tokenPath, err := getTokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
