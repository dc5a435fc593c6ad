package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func rateLimitedHandler(rps, burst int) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return RateLimit(rps, burst)(ok)
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	h := rateLimitedHandler(1, 2)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("burst requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %v", statuses)
	}
}

func TestRateLimit_BucketsArePerIP(t *testing.T) {
	h := rateLimitedHandler(1, 1)

	for i, addr := range []string{"198.51.100.1:1", "198.51.100.2:1", "198.51.100.3:1"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d from fresh ip got %d", i, rec.Code)
		}
	}
}

func TestRateLimit_DisabledWhenRPSZero(t *testing.T) {
	h := rateLimitedHandler(0, 0)
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
		req.RemoteAddr = "203.0.113.9:1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter rejected request %d with %d", i, rec.Code)
		}
	}
}

func TestPruneIdleBuckets(t *testing.T) {
	now := time.Now()
	buckets := map[string]*rateBucket{
		"stale-1": {lim: rate.NewLimiter(1, 1), lastSeen: now.Add(-rateBucketIdle - time.Minute)},
		"stale-2": {lim: rate.NewLimiter(1, 1), lastSeen: now.Add(-time.Hour)},
		"fresh":   {lim: rate.NewLimiter(1, 1), lastSeen: now.Add(-time.Second)},
	}

	pruneIdleBuckets(buckets, now)

	if len(buckets) != 1 {
		t.Fatalf("bucket count = %d, want 1", len(buckets))
	}
	if _, ok := buckets["fresh"]; !ok {
		t.Fatalf("fresh bucket was evicted")
	}
}
