// Command smoke exercises a running server end to end and prints each
// response. It is a manual tool, not part of the test suite.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

type step struct {
	name   string
	method string
	path   string
	form   url.Values
	want   int
}

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(client *http.Client, baseURL string, s step) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if s.form != nil {
		bodyReader = strings.NewReader(s.form.Encode())
	}

	req, err := http.NewRequest(s.method, baseURL+s.path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if s.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp, body, err
}

func main() {
	baseURL := flag.String("base", "http://localhost:5000", "server base URL")
	withAI := flag.Bool("ai", false, "also call the AI routes (uses model quota)")
	flag.Parse()

	// Redirects are part of what we check, so don't follow them.
	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	steps := []step{
		{name: "Health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "Home", method: http.MethodGet, path: "/", want: http.StatusOK},
		{name: "Update subject", method: http.MethodPost, path: "/update_subject", form: url.Values{"subject": {"Physics"}}, want: http.StatusFound},
		{name: "Home after update", method: http.MethodGet, path: "/", want: http.StatusOK},
		{name: "Blank question", method: http.MethodPost, path: "/study_ai", form: url.Values{"message": {""}}, want: http.StatusBadRequest},
		{name: "Search books", method: http.MethodGet, path: "/search_books?q=dune", want: http.StatusOK},
		{name: "Search research", method: http.MethodGet, path: "/search_research?q=quantum", want: http.StatusOK},
		{name: "Save audiobook text", method: http.MethodPost, path: "/audiobook", form: url.Values{"text_content": {"Smoke test"}}, want: http.StatusFound},
		{name: "Music page", method: http.MethodGet, path: "/music", want: http.StatusOK},
	}
	if *withAI {
		steps = append(steps,
			step{name: "Ask", method: http.MethodPost, path: "/study_ai", form: url.Values{"message": {"What is photosynthesis?"}}, want: http.StatusOK},
			step{name: "Quiz", method: http.MethodPost, path: "/quiz", form: url.Values{"material": {"The water cycle"}}, want: http.StatusOK},
		)
	}

	color.Cyan("Smoke testing %s\n", *baseURL)

	failed := 0
	for i, s := range steps {
		color.Yellow("\n%d. %s (%s %s)", i+1, s.name, s.method, s.path)
		resp, body, err := sendRequest(client, *baseURL, s)
		if err != nil {
			color.Red("Failed: %v", err)
			failed++
			continue
		}

		if resp.StatusCode != s.want {
			color.Red("Status: %s (want %d)", resp.Status, s.want)
			failed++
		} else {
			color.Green("Status: %s", resp.Status)
		}
		if loc := resp.Header.Get("Location"); loc != "" {
			fmt.Println("Location:", loc)
		}
		if src := resp.Header.Get("X-Search-Source"); src != "" {
			fmt.Println("X-Search-Source:", src)
		}
		prettyPrint(body)
	}

	if failed > 0 {
		color.Red("\n%d of %d steps failed", failed, len(steps))
		os.Exit(1)
	}
	color.Green("\nAll %d steps passed", len(steps))
}
