package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL    = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	email      = flag.String("email", env("EMAIL", "demo@example.com"), "User e-mail")
	pass       = flag.String("pass", env("PASSWORD", "Password123"), "User password")
	nBookmarks = flag.Int("n", envInt("COUNT", 100), "How many bookmarks to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------
func postJSON(path string, body any, hdr map[string]string) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	return http.DefaultClient.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seed account %s (bookmarks=%d) on %s\n", *email, *nBookmarks, *baseURL)

	token, err := ensureUser()
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := createBookmarks(token, *nBookmarks); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("done")
}

// ----------------------------------------------------------------------------
// Step 1 – make sure the user exists -----------------------------------------
func ensureUser() (string, error) {
	payload := map[string]string{"email": *email, "password": *pass}

	// Try sign-up first …
	if resp, err := postJSON("/auth/signup", payload, nil); err == nil && resp.StatusCode < 300 {
		var r struct {
			Token string `json:"access_token"`
		}
		_ = json.Unmarshal(must(resp.Body), &r)
		fmt.Println("signed up new user")
		return r.Token, nil
	}

	// … otherwise fall back to sign-in.
	resp, err := postJSON("/auth/signin", payload, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("sign-in failed: %s", must(resp.Body))
	}

	var r struct {
		Token string `json:"access_token"`
	}
	if err := json.Unmarshal(must(resp.Body), &r); err != nil {
		return "", err
	}
	fmt.Println("signed in existing user")
	return r.Token, nil
}

// ----------------------------------------------------------------------------
// Step 2 – fill the account with bookmarks -----------------------------------
func createBookmarks(token string, n int) error {
	hdr := map[string]string{"Authorization": "Bearer " + token}

	for i := 0; i < n; i++ {
		payload := map[string]string{
			"title":       gofakeit.Sentence(3),
			"description": gofakeit.Sentence(8),
			"link":        gofakeit.URL(),
		}

		resp, err := postJSON("/bookmarks", payload, hdr)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("create bookmark %d failed: %s", i, must(resp.Body))
		}
		_ = must(resp.Body)
	}

	fmt.Printf("created %d bookmarks\n", n)
	return nil
}
