package video

import "testing"

func TestBuildJobsURL(t *testing.T) {
	cases := []struct {
		name       string
		endpoint   string
		apiVersion string
		want       string
	}{
		{
			name:       "bare resource endpoint",
			endpoint:   "https://res.openai.azure.com",
			apiVersion: "preview",
			want:       "https://res.openai.azure.com/openai/v1/video/generations/jobs?api-version=preview",
		},
		{
			name:       "trailing slash",
			endpoint:   "https://res.openai.azure.com/",
			apiVersion: "preview",
			want:       "https://res.openai.azure.com/openai/v1/video/generations/jobs?api-version=preview",
		},
		{
			name:       "endpoint already addresses the jobs API",
			endpoint:   "https://res.openai.azure.com/openai/v1/video/generations/jobs",
			apiVersion: "preview",
			want:       "https://res.openai.azure.com/openai/v1/video/generations/jobs?api-version=preview",
		},
		{
			name:       "existing api-version is replaced",
			endpoint:   "https://res.openai.azure.com/openai/v1/video/generations/jobs?api-version=2024-01-01",
			apiVersion: "preview",
			want:       "https://res.openai.azure.com/openai/v1/video/generations/jobs?api-version=preview",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildJobsURL(tc.endpoint, tc.apiVersion)
			if err != nil {
				t.Fatalf("BuildJobsURL failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got  %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestBuildJobsURL_EmptyEndpoint(t *testing.T) {
	if _, err := BuildJobsURL("", "preview"); err == nil {
		t.Error("BuildJobsURL succeeded for empty endpoint, want error")
	}
}

func TestBuildStatusURL(t *testing.T) {
	cases := []struct {
		name    string
		jobsURL string
		want    string
	}{
		{
			name:    "jobs URL",
			jobsURL: "https://res.openai.azure.com/openai/v1/video/generations/jobs?api-version=preview",
			want:    "https://res.openai.azure.com/openai/v1/video/generations/jobs/job123?api-version=preview",
		},
		{
			name:    "jobs URL with trailing slash",
			jobsURL: "https://res.openai.azure.com/openai/v1/video/generations/jobs/?api-version=preview",
			want:    "https://res.openai.azure.com/openai/v1/video/generations/jobs/job123?api-version=preview",
		},
		{
			name:    "URL without a jobs segment is left alone",
			jobsURL: "https://res.openai.azure.com/openai/v1/something?api-version=preview",
			want:    "https://res.openai.azure.com/openai/v1/something?api-version=preview",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildStatusURL(tc.jobsURL, "job123")
			if err != nil {
				t.Fatalf("BuildStatusURL failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got  %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestBuildContentURL(t *testing.T) {
	cases := []struct {
		name     string
		endpoint string
		want     string
	}{
		{
			name:     "full jobs URL resolves to the resource root",
			endpoint: "https://res.openai.azure.com/openai/v1/video/generations/jobs",
			want:     "https://res.openai.azure.com/openai/v1/video/generations/gen42/content/video?api-version=preview",
		},
		{
			name:     "bare resource endpoint",
			endpoint: "https://res.openai.azure.com",
			want:     "https://res.openai.azure.com/openai/v1/video/generations/gen42/content/video?api-version=preview",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildContentURL(tc.endpoint, "preview", "gen42")
			if got != tc.want {
				t.Errorf("got  %s\nwant %s", got, tc.want)
			}
		})
	}
}
