package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sizeLimit = 240 * 1024 // CloudWatch log size limit
	// request log type
	requestType = "request"
	redacted    = "REDACTED"
)

// RequestLogOutput receives one JSON line per request.
var RequestLogOutput io.Writer = os.Stderr

// headers never written to the request log
var sensitiveHeaders = []string{"Authorization", "Cookie", "X-Api-Key"}

// logRecord for Request Log
type logRecord struct {
	RequestID       string // AwsRequestID when running on Lambda
	Timestamp       int64
	Duration        int64
	HTTPStatusCode  int
	ErrorStackTrace string
	HTTPMethod      string
	RequestPath     string
	RequestQuery    string
	RequestBody     string
	ResponseBody    string
	Headers         map[string][]string
	Type            string `json:"type"` // keyword for logstash to identify the log as request log
}

func (record *logRecord) String() string {
	buf := bytes.NewBufferString("")
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	e := encoder.Encode(record)
	if e != nil {
		GetLogger().Error("failed to encode log record", zap.Error(e))
		return "{}"
	}
	return buf.String()
}

// GinLogMiddleware writes a request log line for every request served by gin
func GinLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var logRecord *logRecord
		// overwrite the gin.Context.Writer to log response body
		respLogWriter := &respLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = respLogWriter

		defer func() {
			// finally print request log even panic
			fmt.Fprint(RequestLogOutput, logTruncate(logRecord))
		}()

		defer func() {
			if r := recover(); r != nil {
				logRecord.HTTPStatusCode = http.StatusInternalServerError
				logRecord.ErrorStackTrace = string(debug.Stack())
				// throw the panic to the later middlewares
				panic(r)
			}
		}()

		logRecord = initLogRecord(c)

		if lc, ok := lambdacontext.FromContext(c.Request.Context()); ok {
			logRecord.RequestID = lc.AwsRequestID
		}

		c.Next()

		// if response normally, fill in remain fields
		logRecord.HTTPStatusCode = c.Writer.Status()
		logRecord.Duration = time.Now().UnixNano()/1e6 - logRecord.Timestamp
		if respLogWriter.body != nil {
			logRecord.ResponseBody = respLogWriter.body.String()
		}
	}
}

func logTruncate(logRecord *logRecord) (logStr string) {
	logStr = logRecord.String()
	if len(logStr) < sizeLimit {
		return logStr
	}
	respSize := len(logRecord.ResponseBody)
	reqSize := len(logRecord.RequestBody)
	// truncate request body or response body if the total size is over the limit
	logRecord.ResponseBody = "TRUNCATED..."

	if len(logStr)-respSize > sizeLimit {
		logRecord.RequestBody = "TRUNCATED..."
	}

	if len(logStr)-respSize-reqSize > sizeLimit {
		logRecord.ErrorStackTrace = "TRUNCATED..."
	}
	return logRecord.String()
}

type respLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w respLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w respLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func initLogRecord(ctx *gin.Context) *logRecord {
	var requestBody string
	if ctx.Request.Body != nil {
		requestBodyBytes, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			GetLogger().Warn("failed to read request body for logging", zap.Error(err))
		}
		// reattach request body for later use
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))
		requestBody = string(requestBodyBytes)
	}

	return &logRecord{
		Timestamp:    time.Now().UnixNano() / 1e6,
		HTTPMethod:   ctx.Request.Method,
		RequestPath:  ctx.Request.URL.Path,
		RequestQuery: ctx.Request.URL.Query().Encode(),
		RequestBody:  requestBody,
		Type:         requestType,
		Headers:      redactHeaders(ctx.Request.Header),
	}
}

func redactHeaders(h http.Header) map[string][]string {
	out := h.Clone()
	for _, name := range sensitiveHeaders {
		if _, ok := out[name]; ok {
			out[name] = []string{redacted}
		}
	}
	return out
}
