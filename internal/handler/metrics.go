package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

const metricsCacheKey = "job_metrics"

// GetJobMetrics serves dashboard aggregates through a short-lived Redis
// cache. A cache failure degrades to a direct database read.
func (h *Handler) GetJobMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if h.redisClient != nil {
		cached, err := h.redisClient.Get(ctx, metricsCacheKey).Result()
		if err == nil {
			var metrics domain.JobMetrics
			if err := json.Unmarshal([]byte(cached), &metrics); err == nil {
				h.successResponse(w, r, "Job metrics retrieved", &metrics)
				return
			}
		} else if err != redis.Nil {
			slog.Warn("metrics cache read failed", "error", err)
		}
	}

	metrics, err := h.repository.GetJobMetrics()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if h.redisClient != nil {
		if encoded, err := json.Marshal(metrics); err == nil {
			ttl := time.Duration(h.config.Redis.MetricsCacheTTL) * time.Second
			if err := h.redisClient.Set(ctx, metricsCacheKey, encoded, ttl).Err(); err != nil {
				slog.Warn("metrics cache write failed", "error", err)
			}
		}
	}

	h.successResponse(w, r, "Job metrics retrieved", metrics)
}

func (h *Handler) GetJobTrends(w http.ResponseWriter, r *http.Request) {
	var months int
	switch r.URL.Query().Get("timeRange") {
	case "1month":
		months = 1
	case "3months":
		months = 3
	case "1year":
		months = 12
	default:
		months = 6
	}

	end := time.Now()
	start := end.AddDate(0, -months, 0)

	trends, err := h.repository.GetJobTrends(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Job trends retrieved", trends)
}
