package middlewares

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDContextKey = contextKey("request_id")

const REQUEST_ID_HEADER = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack repassa o upgrade de websocket para a conexão original.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer não suporta hijack")
	}
	s.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// RequestLog gera (ou reaproveita) o X-Request-Id e registra cada requisição.
func RequestLog(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(REQUEST_ID_HEADER)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(REQUEST_ID_HEADER, requestID)

			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(context.WithValue(r.Context(), RequestIDContextKey, requestID)))

			logger.Infow("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"elapsed", time.Since(started),
			)
		})
	}
}
