package scan

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *ScanRequest {
	return &ScanRequest{
		JDText: "Looking for a Go engineer with distributed systems experience.",
		Resume: ResumeFile{
			Name: "resume.pdf",
			MIME: "application/pdf",
			Data: []byte("%PDF-1.4 fake resume bytes"),
		},
	}
}

func TestSubmit_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/process", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Contains(t, r.FormValue("jd_text"), "Go engineer")

		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "resume.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), "%PDF-1.4")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jd_text":          "Looking for a Go engineer.",
			"ats_score":        72.5,
			"suggested_skills": []string{"Kubernetes", "gRPC"},
			"improvement_recommendation": []map[string]string{
				{"issue": "No metrics", "advice": "Quantify impact in bullets."},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	resp, err := client.Submit(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Looking for a Go engineer.", resp.JDText)
	require.NotNil(t, resp.ATSScore)
	assert.InDelta(t, 72.5, *resp.ATSScore, 0.001)
	assert.Equal(t, []string{"Kubernetes", "gRPC"}, resp.SuggestedSkills)
	require.Len(t, resp.ImprovementAdvice, 1)
	assert.Equal(t, "No metrics", resp.ImprovementAdvice[0].Issue)
	assert.Equal(t, "Quantify impact in bullets.", resp.ImprovementAdvice[0].Advice)
}

func TestSubmit_DefensiveFieldDecoding(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, resp *ScanResponse)
	}{
		{
			name: "wrong-typed score yields nil score",
			body: `{"ats_score": "85%", "jd_text": "x"}`,
			check: func(t *testing.T, resp *ScanResponse) {
				assert.Nil(t, resp.ATSScore)
				assert.Equal(t, "x", resp.JDText)
			},
		},
		{
			name: "empty object yields empty forms",
			body: `{}`,
			check: func(t *testing.T, resp *ScanResponse) {
				assert.Empty(t, resp.JDText)
				assert.Nil(t, resp.ATSScore)
				assert.Empty(t, resp.SuggestedSkills)
				assert.Empty(t, resp.ImprovementAdvice)
			},
		},
		{
			name: "wrong-shaped skills yield empty slice",
			body: `{"suggested_skills": "Kubernetes"}`,
			check: func(t *testing.T, resp *ScanResponse) {
				assert.Empty(t, resp.SuggestedSkills)
			},
		},
		{
			name: "wrong-shaped advice yields empty slice",
			body: `{"improvement_recommendation": [{"issue": 5}]}`,
			check: func(t *testing.T, resp *ScanResponse) {
				assert.Empty(t, resp.ImprovementAdvice)
			},
		},
		{
			name: "null fields yield empty forms",
			body: `{"jd_text": null, "ats_score": null, "suggested_skills": null}`,
			check: func(t *testing.T, resp *ScanResponse) {
				assert.Empty(t, resp.JDText)
				assert.Nil(t, resp.ATSScore)
				assert.Empty(t, resp.SuggestedSkills)
			},
		},
		{
			name: "unknown extra fields are ignored",
			body: `{"ats_score": 60, "resume_text": "ignored", "success": true}`,
			check: func(t *testing.T, resp *ScanResponse) {
				require.NotNil(t, resp.ATSScore)
				assert.InDelta(t, 60, *resp.ATSScore, 0.001)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			resp, err := client.Submit(context.Background(), testRequest())
			require.NoError(t, err)
			tt.check(t, resp)
		})
	}
}

func TestSubmit_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "<html>gateway error</html>"},
		{"JSON array", `[1, 2, 3]`},
		{"bare string", `"ok"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			_, err := client.Submit(context.Background(), testRequest())
			require.Error(t, err)

			var malformed *MalformedResponseError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestSubmit_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			"structured detail message",
			http.StatusBadRequest,
			`{"detail": {"message": "Resume too long"}}`,
			"Resume too long",
		},
		{
			"detail as bare string",
			http.StatusRequestTimeout,
			`{"detail": "Request timed out during resume parsing."}`,
			"Request timed out during resume parsing.",
		},
		{
			"error field",
			http.StatusInternalServerError,
			`{"error": "An internal server error occurred. Please try again later."}`,
			"An internal server error occurred. Please try again later.",
		},
		{
			"unparsable body falls back to generic",
			http.StatusBadGateway,
			"<html>bad gateway</html>",
			"HTTP error! status: 502",
		},
		{
			"empty body falls back to generic",
			http.StatusNotFound,
			"",
			"HTTP error! status: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			_, err := client.Submit(context.Background(), testRequest())
			require.Error(t, err)

			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, tt.status, serverErr.StatusCode)
			assert.Equal(t, tt.message, serverErr.Error())
		})
	}
}

func TestSubmit_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, &Options{Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := client.Submit(context.Background(), testRequest())
	require.Error(t, err)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "Request timed out. Please try again.", err.Error())
	assert.Less(t, time.Since(start), 5*time.Second, "timeout must cancel the in-flight call")
}

func TestSubmit_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // immediately unreachable

	client := NewClient(server.URL, nil)
	_, err := client.Submit(context.Background(), testRequest())
	require.Error(t, err)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", nil)
	_, err := client.Submit(context.Background(), testRequest())
	require.NoError(t, err)
}
