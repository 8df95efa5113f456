package net

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

var ErrorURLNotFound = errors.New("URL not found")

func getResp(ctx context.Context, url string) (resp *http.Response, err error) {
	c, err := GetHTTPClient()
	if err != nil {
		return nil, errors.Wrap(err, "error creating HTTP client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating HTTP Get request")
	}

	req.Header.Set("User-Agent", clientAgent)

	return c.Do(req) //nolint:gosec // G107: URL supplied by the operator on the command line
}

// Download saves the content at url into filepath.
func Download(ctx context.Context, url string, filepath string) (retErr error) {
	out, err := os.Create(filepath)
	if err != nil {
		return errors.Wrapf(err, "error creating file: %s", filepath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && retErr == nil {
			retErr = errors.Wrap(cerr, "closing file")
		}
	}()

	resp, err := getResp(ctx, url)
	if err != nil {
		return errors.Wrap(err, "error executing HTTP Get request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrorURLNotFound
	}

	if resp.StatusCode != http.StatusOK {
		PrintHTTPResponse(resp)
		return fmt.Errorf("error downloading file (status: %d - %s): %s", resp.StatusCode, resp.Status, url)
	}

	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return errors.Wrap(err, "error saving downloaded content to file")
	}

	return nil
}
