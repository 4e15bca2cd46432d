package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferLogger(buf *bytes.Buffer) *zap.SugaredLogger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}

func TestLogMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := bufferLogger(&buf)

	body := "amount=1500&currency=card_rub"
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()

	var seen string
	handler := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		seen = string(data)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("response"))
	}))

	handler.ServeHTTP(rr, req)

	if seen != body {
		t.Errorf("handler got body %q", seen)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "method=POST") {
		t.Error("log has no method")
	}
	if !strings.Contains(logOutput, "status=201") {
		t.Error("log has no status")
	}
	if !strings.Contains(logOutput, "size=8") {
		t.Error("log has no size")
	}
	if !strings.Contains(logOutput, "body="+body) {
		t.Error("log has no request body")
	}
	if !strings.Contains(logOutput, "outputheaders=") {
		t.Error("log has no response headers")
	}
}

func TestLogMiddlewareDefaultStatus(t *testing.T) {
	var buf bytes.Buffer

	handler := LogMiddleware(bufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("expected status=200 in %q", buf.String())
	}
}
