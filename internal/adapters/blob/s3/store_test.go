package s3

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeBucket is an in-memory S3 endpoint speaking just enough of the REST API
// for PutObject.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	status  int
}

func (f *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		return response(f.status, "<Error><Code>InternalError</Code><Message>boom</Message></Error>"), nil
	}
	if req.Method != http.MethodPut {
		return response(http.StatusNotImplemented, ""), nil
	}
	// path style: /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	if len(parts) != 2 {
		return response(http.StatusBadRequest, ""), nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") || req.Header.Get("X-Amz-Decoded-Content-Length") != "" {
		body = decodeChunked(body)
	}
	f.objects[parts[1]] = body
	f.types[parts[1]] = req.Header.Get("Content-Type")
	return response(http.StatusOK, ""), nil
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}, "Etag": {`"etag"`}},
	}
}

// decodeChunked strips aws-chunked framing: <hex>[;ext]\r\n<data>\r\n ... 0\r\n<trailers>.
func decodeChunked(b []byte) []byte {
	r := bufio.NewReader(bytes.NewReader(b))
	var out bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return b
		}
		size, err := strconv.ParseInt(strings.TrimSpace(strings.SplitN(line, ";", 2)[0]), 16, 64)
		if err != nil {
			return b
		}
		if size == 0 {
			return out.Bytes()
		}
		if _, err := io.CopyN(&out, r, size); err != nil {
			return b
		}
		if _, err := r.ReadString('\n'); err != nil {
			return b
		}
	}
}

func newTestStore(t *testing.T, bucket *fakeBucket) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Bucket:          "evidence-bucket",
		Region:          "us-east-1",
		Endpoint:        "https://s3.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIATEST",
		SecretAccessKey: "secret",
		HTTPClient:      &http.Client{Transport: bucket},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestPutStoresObject(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	s := newTestStore(t, bucket)

	info, err := s.Put(context.Background(), "evidence/e1/footage.mp4", strings.NewReader("frames"), "video/mp4")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "evidence/e1/footage.mp4" || info.Size != 6 || info.ContentType != "video/mp4" {
		t.Fatalf("unexpected info %+v", info)
	}
	if got := string(bucket.objects["evidence/e1/footage.mp4"]); got != "frames" {
		t.Fatalf("stored body = %q", got)
	}
	if bucket.types["evidence/e1/footage.mp4"] != "video/mp4" {
		t.Fatalf("content type not forwarded")
	}
}

func TestPutSurfacesServiceErrors(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}, status: http.StatusForbidden}
	s := newTestStore(t, bucket)

	if _, err := s.Put(context.Background(), "evidence/e1/a.txt", strings.NewReader("x"), ""); err == nil {
		t.Fatalf("expected error from rejected upload")
	}
}

func TestPresignAndURL(t *testing.T) {
	s := newTestStore(t, &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}})

	url, err := s.PresignURL(context.Background(), "evidence/e1/footage.mp4", 15*time.Minute)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.HasPrefix(url, "https://s3.test.local/evidence-bucket/evidence/e1/footage.mp4?") {
		t.Fatalf("unexpected presigned url %s", url)
	}
	if !strings.Contains(url, "X-Amz-Expires=900") {
		t.Fatalf("expected 15 minute expiry in %s", url)
	}
	if got := s.URL("evidence/e1/footage.mp4"); got != "s3://evidence-bucket/evidence/e1/footage.mp4" {
		t.Fatalf("url = %s", got)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}
