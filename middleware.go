package ccfield

import (
	"net/http"
)

// Middleware normalizes the caching fields of responses written by next,
// the same way the proxy does for origin responses.
func (p *Proxy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		iw := &headerInterceptor{rw: w, r: r, p: p}
		next.ServeHTTP(iw, r)
		// handlers that never write still send an implicit 200
		if !iw.wroteHeaders {
			iw.WriteHeader(http.StatusOK)
		}
	})
}

// headerInterceptor is a wrapper around http.ResponseWriter that processes
// the response header right before it is sent.
type headerInterceptor struct {
	rw           http.ResponseWriter
	r            *http.Request
	p            *Proxy
	wroteHeaders bool
}

// Implementation of http.ResponseWriter
func (t *headerInterceptor) Header() http.Header {
	return t.rw.Header()
}

// Implementation of http.ResponseWriter
func (t *headerInterceptor) WriteHeader(statusCode int) {
	// informational responses do not carry the final header
	if statusCode >= 100 && statusCode < 200 {
		t.rw.WriteHeader(statusCode)
		return
	}
	if t.wroteHeaders {
		return
	}
	// remember that we wrote the headers
	t.wroteHeaders = true
	t.p.process(t.r, statusCode, t.rw.Header())
	t.rw.WriteHeader(statusCode)
}

// Implementation of http.ResponseWriter
func (t *headerInterceptor) Write(b []byte) (int, error) {
	// write headers if not already written
	if !t.wroteHeaders {
		t.WriteHeader(http.StatusOK)
	}
	return t.rw.Write(b)
}

// Flush implements http.Flusher.
func (t *headerInterceptor) Flush() {
	if !t.wroteHeaders {
		t.WriteHeader(http.StatusOK)
	}
	if f, ok := t.rw.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap is used by http.ResponseController.
func (t *headerInterceptor) Unwrap() http.ResponseWriter {
	return t.rw
}
