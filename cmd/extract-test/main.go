// extract-test exercises a deployed extraction API: it checks /health,
// then posts a sample order PDF to /extract and prints the JSON response.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiURL  string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "extract-test <order.pdf>",
	Short: "Send a purchase-order PDF to the extraction API and print the JSON output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: timeout}
		if err := checkHealth(client); err != nil {
			return fmt.Errorf("health check failed, skipping extraction: %w", err)
		}
		return postExtract(client, args[0])
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the /health endpoint only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkHealth(&http.Client{Timeout: timeout})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "http://localhost:5000", "base URL of the extraction API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "client-side request timeout")
	rootCmd.AddCommand(healthCmd)
}

func checkHealth(client *http.Client) error {
	resp, err := client.Get(apiURL + "/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("/health returned %d: %s", resp.StatusCode, body)
	}
	fmt.Println("Response from /health:")
	printJSON(body)
	return nil
}

func postExtract(client *http.Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	fmt.Printf("Sending %q to /extract...\n", filepath.Base(path))
	req, err := http.NewRequest(http.MethodPost, apiURL+"/extract", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("/extract returned %d: %s", resp.StatusCode, body)
	}
	fmt.Println("Response from /extract:")
	printJSON(body)
	return nil
}

func printJSON(body []byte) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
