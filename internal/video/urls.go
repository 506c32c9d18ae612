package video

import (
	"fmt"
	"net/url"
	"strings"
)

const jobsPath = "/openai/v1/video/generations/jobs"

// BuildJobsURL constructs the job creation URL for an endpoint. A bare
// resource endpoint gets the jobs path appended; an endpoint that already
// addresses the jobs API is reused as-is. The api-version query parameter is
// always set to the given version, replacing any existing value.
func BuildJobsURL(endpoint, apiVersion string) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("endpoint is empty")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	path := strings.TrimRight(u.Path, "/")
	if !strings.Contains(path, "/video/generations/jobs") {
		path += jobsPath
	}

	q := u.Query()
	q.Set("api-version", apiVersion)

	u.Path = path
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// BuildStatusURL derives the polling URL for a job from the creation URL by
// inserting the job ID after the trailing /jobs path segment. The query
// string is preserved.
func BuildStatusURL(jobsURL, jobID string) (string, error) {
	if jobsURL == "" {
		return "", fmt.Errorf("jobs URL is empty")
	}

	u, err := url.Parse(jobsURL)
	if err != nil {
		return "", fmt.Errorf("parsing jobs URL: %w", err)
	}

	switch {
	case strings.HasSuffix(u.Path, "/jobs"):
		u.Path += "/" + jobID
	case strings.HasSuffix(u.Path, "/jobs/"):
		u.Path = strings.TrimRight(u.Path, "/") + "/" + jobID
	}

	return u.String(), nil
}

// BuildContentURL constructs the download URL for a finished generation. The
// path is rooted at the endpoint prefix before the first /openai segment, so
// both resource endpoints and full jobs URLs resolve to the same place.
func BuildContentURL(endpoint, apiVersion, generationID string) string {
	base := endpoint
	if i := strings.Index(endpoint, "/openai"); i >= 0 {
		base = endpoint[:i]
	}
	return fmt.Sprintf("%s/openai/v1/video/generations/%s/content/video?api-version=%s", base, generationID, apiVersion)
}
