package core

import (
	"bufio"
	"strconv"
)

// writeResponse serializes a status line, headers, and body onto w per
// spec.md §4.6 step 4: one write for an inline body, back-pressured
// `Transfer-Encoding: chunked` framing for a stream (WithStream already set
// the header; a stream is otherwise undelimited on a kept-alive
// connection, per spec.md §8 invariant 3). keepAlive controls which
// Connection header value is sent; the caller decides keep-alive
// eligibility (conn.go).
func writeResponse(w *bufio.Writer, res *Response, keepAlive bool) error {
	if _, err := w.WriteString("HTTP/1.1 "); err != nil {
		return err
	}
	if _, err := w.WriteString(strconv.Itoa(res.Status)); err != nil {
		return err
	}
	if _, err := w.WriteString(" "); err != nil {
		return err
	}
	if _, err := w.WriteString(ReasonPhrase(res.Status)); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}

	if keepAlive {
		if _, err := w.WriteString("Connection: keep-alive\r\n"); err != nil {
			return err
		}
	} else {
		if _, err := w.WriteString("Connection: close\r\n"); err != nil {
			return err
		}
	}

	var writeErr error
	res.Headers.Each(func(name, value string) {
		if writeErr != nil {
			return
		}
		if _, err := w.WriteString(name); err != nil {
			writeErr = err
			return
		}
		if _, err := w.WriteString(": "); err != nil {
			writeErr = err
			return
		}
		if _, err := w.WriteString(value); err != nil {
			writeErr = err
			return
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			writeErr = err
			return
		}
	})
	if writeErr != nil {
		return writeErr
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}

	switch {
	case res.IsStream():
		s := res.Stream()
		for {
			chunk, ok := s.Next()
			if !ok {
				break
			}
			if len(chunk) == 0 {
				continue
			}
			if _, err := w.WriteString(strconv.FormatInt(int64(len(chunk)), 16)); err != nil {
				return err
			}
			if _, err := w.WriteString("\r\n"); err != nil {
				return err
			}
			if _, err := w.Write(chunk); err != nil {
				return err
			}
			if _, err := w.WriteString("\r\n"); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("0\r\n\r\n"); err != nil {
			return err
		}
		return w.Flush()
	default:
		if body := res.InlineBody(); len(body) > 0 {
			if _, err := w.Write(body); err != nil {
				return err
			}
		}
		return w.Flush()
	}
}
