package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
)

var (
	mintServer    string
	mintAppID     string
	mintProjectID string
	mintAsForm    bool
)

// mintCmd represents the mint command
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Request a token from a running stub server",
	Long: `Sends a token request to a running stub server and prints the result.
Useful as a quick smoke test after changing override configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var body []byte
		contentType := "application/json"

		if mintAsForm {
			contentType = "application/x-www-form-urlencoded"
			form := url.Values{}
			form.Set("appId", mintAppID)
			form.Set("projectId", mintProjectID)
			body = []byte(form.Encode())
		} else {
			payload, err := json.Marshal(map[string]string{
				"appId":     mintAppID,
				"projectId": mintProjectID,
			})
			if err != nil {
				return fmt.Errorf("failed to encode request: %w", err)
			}
			body = payload
		}

		client := retryablehttp.NewClient()
		client.RetryMax = 0
		client.Logger = nil

		req, err := retryablehttp.NewRequest(http.MethodPost, mintServer, body)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		answer, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server answered %s: %s", resp.Status, strings.TrimSpace(string(answer)))
		}

		var minted struct {
			Token     string `json:"token"`
			TTLMillis int64  `json:"ttlMillis"`
		}
		if err := json.Unmarshal(answer, &minted); err != nil {
			return fmt.Errorf("malformed response body: %w", err)
		}

		fmt.Printf("token: %s\nttlMillis: %d\n", minted.Token, minted.TTLMillis)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(mintCmd)

	mintCmd.Flags().StringVar(&mintServer, "server", "http://127.0.0.1:8080/", "Base URL of the running stub server")
	mintCmd.Flags().StringVar(&mintAppID, "app-id", "", "Application id to request a token for")
	mintCmd.Flags().StringVar(&mintProjectID, "project-id", "", "Project id to send with the request")
	mintCmd.Flags().BoolVar(&mintAsForm, "form", false, "Send the request form-encoded instead of JSON")
	_ = mintCmd.MarkFlagRequired("app-id")
	_ = mintCmd.MarkFlagRequired("project-id")
}
