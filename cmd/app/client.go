package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	transportUDS  = "uds"
	transportHTTP = "http"
)

type cliConfig struct {
	Transport string
	Server    string
	Socket    string
}

func cliConfigFrom(c *cli.Command) (cliConfig, error) {
	cfg := cliConfig{
		Transport: strings.ToLower(strings.TrimSpace(c.String("transport"))),
		Server:    c.String("server"),
		Socket:    c.String("socket"),
	}
	if cfg.Transport != transportUDS && cfg.Transport != transportHTTP {
		return cliConfig{}, fmt.Errorf("unknown transport %q (want uds or http)", cfg.Transport)
	}
	return cfg, nil
}

const defaultServerURL = "http://127.0.0.1:8080"

// serverURL turns a listen address into the URL a local client dials.
// Wildcard and empty hosts become the loopback address.
func serverURL(listenAddr string) string {
	host, port, err := net.SplitHostPort(strings.TrimSpace(listenAddr))
	if err != nil || port == "" {
		return defaultServerURL
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

type apiClient struct {
	httpClient *http.Client
	server     string
}

func newAPIClient(server string) *apiClient {
	return &apiClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		server:     strings.TrimRight(server, "/"),
	}
}

func (c *apiClient) request(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type graphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

// graphql runs one operation and decodes the named root field into out.
func (c *apiClient) graphql(ctx context.Context, query string, vars map[string]any, field string, out any) error {
	var resp struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []graphQLError             `json:"errors"`
	}
	in := map[string]any{"query": query, "variables": vars}
	if err := c.request(ctx, http.MethodPost, "/graphql", in, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		e := resp.Errors[0]
		code, _ := e.Extensions["code"].(string)
		if code == "" {
			code = "GRAPHQL"
		}
		return fmt.Errorf("graphql error (%s): %s", code, e.Message)
	}
	raw, ok := resp.Data[field]
	if !ok {
		return fmt.Errorf("graphql response has no %q field", field)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
