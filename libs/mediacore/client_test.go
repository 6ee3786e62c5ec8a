package mediacore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// newTestBackend serves routes registered by setup on a local listener.
func newTestBackend(t *testing.T, setup func(r *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientProcess(t *testing.T) {
	var got ProcessRequest
	var requestID, contentType string
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/api/process", func(c *gin.Context) {
			requestID = c.GetHeader("X-Request-ID")
			contentType = c.GetHeader("Content-Type")
			if err := c.ShouldBindJSON(&got); err != nil {
				c.String(http.StatusBadRequest, err.Error())
				return
			}
			c.JSON(http.StatusOK, gin.H{"output": "/srv/out/processed_clip.mp4"})
		})
	})

	client := NewClient(srv.URL, time.Second)
	req := ProcessRequest{Input: "clip.mp4", Resolution: "1280x720", Bitrate: "1000k"}
	resp, err := client.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if resp.Output != "/srv/out/processed_clip.mp4" {
		t.Errorf("Output = %q", resp.Output)
	}
	if got != req {
		t.Errorf("backend received %+v, want %+v", got, req)
	}
	if requestID == "" {
		t.Error("X-Request-ID header not set")
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
}

func TestClientProcessOmitsEmptyFields(t *testing.T) {
	var body map[string]interface{}
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/api/process", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&body)
			c.JSON(http.StatusOK, gin.H{"output": "x"})
		})
	})

	if _, err := NewClient(srv.URL, time.Second).Process(context.Background(), ProcessRequest{Input: "clip.mp4"}); err != nil {
		t.Fatal(err)
	}
	if body["input"] != "clip.mp4" {
		t.Errorf("input = %v", body["input"])
	}
	for _, key := range []string{"output", "resolution", "bitrate", "format", "dry_run"} {
		if _, ok := body[key]; ok {
			t.Errorf("unset field %q should be omitted, body = %v", key, body)
		}
	}
}

func TestClientStatusError(t *testing.T) {
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/api/process", func(c *gin.Context) {
			c.String(http.StatusInternalServerError, "ffmpeg exploded")
		})
	})

	_, err := NewClient(srv.URL, time.Second).Process(context.Background(), ProcessRequest{Input: "clip.mp4"})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d", statusErr.Code)
	}
	if !strings.Contains(err.Error(), "backend returned error: 500 - ffmpeg exploded") {
		t.Errorf("error = %v", err)
	}
}

func TestClientMalformedResponse(t *testing.T) {
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/api/compare", func(c *gin.Context) {
			c.String(http.StatusOK, "not json")
		})
	})

	_, err := NewClient(srv.URL, time.Second).Compare(context.Background(), "a.mp4", "b.mp4")
	if err == nil || !strings.Contains(err.Error(), "failed to parse response") {
		t.Errorf("Compare() error = %v, want parse failure", err)
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Compare() error = %v, want ErrDecode", err)
	}
}

func TestClientCompare(t *testing.T) {
	var got CompareRequest
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/api/compare", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&got)
			c.JSON(http.StatusOK, gin.H{
				"original":          gin.H{"filename": "a.mp4", "size": 1000, "format": "mp4"},
				"processed":         gin.H{"filename": "b.mp4", "size": 750, "format": "mp4"},
				"size_diff_percent": 25.0,
			})
		})
	})

	res, err := NewClient(srv.URL, time.Second).Compare(context.Background(), "a.mp4", "b.mp4")
	if err != nil {
		t.Fatalf("Compare() error: %v", err)
	}
	if got.Original != "a.mp4" || got.Processed != "b.mp4" {
		t.Errorf("backend received %+v", got)
	}
	if res.Original.Size != 1000 || res.Processed.Size != 750 {
		t.Errorf("sizes = %d, %d", res.Original.Size, res.Processed.Size)
	}
	if res.SizeDiffPercent != 25 {
		t.Errorf("SizeDiffPercent = %v", res.SizeDiffPercent)
	}
}

func TestClientInfoEscapesPath(t *testing.T) {
	var got string
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.GET("/api/info", func(c *gin.Context) {
			got = c.Query("path")
			c.JSON(http.StatusOK, MediaInfo{Filename: "my clip&1.mp4", Duration: "00:00:10", Size: 2048})
		})
	})

	path := "/media/my clip&1.mp4"
	info, err := NewClient(srv.URL, time.Second).Info(context.Background(), path)
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if got != path {
		t.Errorf("backend saw path %q, want %q", got, path)
	}
	if info.Size != 2048 || info.Duration != "00:00:10" {
		t.Errorf("info = %+v", info)
	}
}

func TestClientCompress(t *testing.T) {
	var got CompressRequest
	srv := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/api/compress", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&got)
			c.JSON(http.StatusOK, CompressResponse{Output: "clip_compressed.mp4", Status: "success", Message: "Video compressed successfully"})
		})
	})

	resp, err := NewClient(srv.URL, time.Second).Compress(context.Background(), CompressRequest{Input: "clip.mp4", Bitrate: "800k"})
	if err != nil {
		t.Fatalf("Compress() error: %v", err)
	}
	if got.Input != "clip.mp4" || got.Bitrate != "800k" {
		t.Errorf("backend received %+v", got)
	}
	if resp.Status != "success" || resp.Output != "clip_compressed.mp4" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClientHealth(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus string
	}{
		{name: "json body", status: http.StatusOK, body: `{"status":"healthy","version":"0.3.0","ffmpeg_available":true}`, wantStatus: "healthy"},
		{name: "plain body", status: http.StatusOK, body: "OK", wantStatus: "OK"},
		{name: "unavailable", status: http.StatusServiceUnavailable, body: "draining", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestBackend(t, func(r *gin.Engine) {
				r.GET("/health", func(c *gin.Context) {
					c.Data(tt.status, "text/plain", []byte(tt.body))
				})
			})

			client := NewClient(srv.URL, time.Second)
			health, err := client.Health(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Health() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if client.HealthCheck(context.Background()) == nil {
					t.Error("HealthCheck() should fail too")
				}
				return
			}
			if health.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", health.Status, tt.wantStatus)
			}
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second).HealthCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to reach backend") {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultBackendURL},
		{"http://media:9000/", "http://media:9000"},
		{"http://media:9000", "http://media:9000"},
	}
	for _, tt := range tests {
		if got := NewClient(tt.in, 0).BaseURL(); got != tt.want {
			t.Errorf("NewClient(%q).BaseURL() = %q, want %q", tt.in, got, tt.want)
		}
	}
	if c := NewClient("", 0); c.http.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.http.Timeout, DefaultTimeout)
	}
}
