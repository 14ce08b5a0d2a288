package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const awaitServicePollInterval = time.Millisecond * 100

// AwaitService polls statusURL with GET requests until the service answers with a 200
// status or the timeout elapses. Progress is written to output.
func AwaitService(httpClient *http.Client, statusURL string, timeout time.Duration, output io.Writer) error {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if output == nil {
		output = io.Discard
	}
	fmt.Fprintf(output, "Connecting to service at %s", statusURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := httpClient.Get(statusURL)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Fprintln(output)
				return nil
			}
			err = fmt.Errorf("service returned status code %d", resp.StatusCode)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(awaitServicePollInterval)
	}
}
