package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DoRequest issues one JSON API request and returns the raw body.
// addr falls back to the FLOWPATH_API_ADDR environment variable.
func DoRequest(addr, method, path string, body []byte) ([]byte, error) {
	if env := os.Getenv("FLOWPATH_API_ADDR"); env != "" {
		addr = env
	}
	if addr == "" {
		return nil, fmt.Errorf("empty api address")
	}
	if !strings.HasPrefix(addr, "http") {
		addr = "http://" + addr
	}

	reqURL, err := url.JoinPath(addr, path)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
