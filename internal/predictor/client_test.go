package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edurisk/internal/assessment"
)

var testPayload = assessment.Payload{
	Age: 20, AttendancePercent: 85, AverageMarks: 90,
	PreviousFailures: 0, ParentsEducation: 5, FamilyIncome: 2,
	Extracurricular: 2, BehaviorIssues: 1,
}

func TestPredict(t *testing.T) {
	t.Run("posts the payload and returns the body untouched", func(t *testing.T) {
		var hits atomic.Int32
		const body = `{"success":true,"risk":"Low","confidence":91.2,"unknown":[1,2]}`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			got, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"age":20,"attendance_percent":85,"avg_marks":90,"prev_failures":0,
				"parents_education":5,"family_income":2,"extracurricular":2,"behavior_issues":1}`, string(got))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		c := New(server.URL + "/")
		raw, err := c.Predict(context.Background(), testPayload)
		require.NoError(t, err)
		assert.Equal(t, body, string(raw))
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("non-2xx is a status error and is not retried", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":"ML model not loaded"}`))
		}))
		defer server.Close()

		_, err := New(server.URL).Predict(context.Background(), testPayload)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
		assert.Equal(t, "ML model not loaded", se.Message)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("non-JSON success body is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		defer server.Close()

		_, err := New(server.URL).Predict(context.Background(), testPayload)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := New(url).Predict(context.Background(), testPayload)
		var ue *ErrUnavailable
		assert.ErrorAs(t, err, &ue)
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		_, err := New(server.URL).Predict(ctx, testPayload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("works through the submitter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := assessment.Submit(context.Background(), New(server.URL), assessment.Submission{ID: "x", Payload: testPayload})
		var ne *assessment.NetworkError
		require.ErrorAs(t, err, &ne)
		var se *StatusError
		assert.ErrorAs(t, err, &se)
	})
}

func TestHealth(t *testing.T) {
	t.Run("decodes known keys", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "running", "model_loaded": true, "database_connected": true,
			})
		}))
		defer server.Close()

		h, err := New(server.URL).Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Health{Status: "running", ModelLoaded: true, DatabaseConnected: true}, h)
	})

	t.Run("missing keys read as zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"running"}`))
		}))
		defer server.Close()

		h, err := New(server.URL).Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "running", h.Status)
		assert.False(t, h.ModelLoaded)
	})
}

func TestWithTimeout(t *testing.T) {
	c := New("http://example.invalid", WithTimeout(3*time.Second))
	assert.Equal(t, 3*time.Second, c.http.Timeout)
	assert.Equal(t, "http://example.invalid", c.Endpoint())
}
