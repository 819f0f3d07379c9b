package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// WithMetrics instrumenta requests HTTP (contador, latencia, inflight).
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		path := NormalizePath(r.URL.Path)

		HTTPInflight.WithLabelValues(method, path).Inc()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			HTTPInflight.WithLabelValues(method, path).Dec()
			HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		}()

		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

var (
	objectIDSegmentRE = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	uuidSegmentRE     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F-]{4}-[0-9a-fA-F-]{4,}$`)
)

// NormalizePath reemplaza IDs por ":id" para acotar la cardinalidad de labels.
func NormalizePath(p string) string {
	clean := strings.SplitN(p, "?", 2)[0]
	var out []string
	for _, seg := range strings.Split(clean, "/") {
		switch {
		case seg == "":
			continue
		case objectIDSegmentRE.MatchString(seg), uuidSegmentRE.MatchString(seg):
			out = append(out, ":id")
		default:
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}
