package buffer

import "bytes"

var (
	sp              = []byte(" ")
	crlf            = []byte("\r\n")
	http11          = []byte("HTTP/1.1")
	bContentLength  = []byte("content-length")
	bTransferEnc    = []byte("transfer-encoding")
	bConnection     = []byte("connection")
	bClose          = []byte("close")
	bIdentity       = []byte("identity")
)

// parseHead parses "METHOD SP target SP HTTP/1.1\r\nHeader: value\r\n...\r\n":
// buf ends right after the CRLF of the last header line (or of the request
// line, if there are no headers) — the blank line that terminates the head
// section is not included. It produces only byte-range views into buf; no
// copies.
func parseHead(buf []byte) (*Head, error) {
	lineEnd := bytes.Index(buf, crlf)
	if lineEnd == -1 {
		return nil, ErrInvalidRequestLine
	}
	line := buf[:lineEnd]

	sp1 := bytes.IndexByte(line, ' ')
	if sp1 == -1 {
		return nil, ErrInvalidRequestLine
	}
	method := ParseMethod(line[:sp1])
	if method == MethodUnknown {
		return nil, ErrInvalidMethod
	}

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 == -1 {
		return nil, ErrInvalidRequestLine
	}
	target := rest[:sp2]
	proto := rest[sp2+1:]
	if !bytes.Equal(proto, http11) {
		return nil, ErrUnsupportedVersion
	}

	if len(target) == 0 || (target[0] != '/' && target[0] != '*') {
		return nil, ErrInvalidPath
	}
	var path, query []byte
	if qi := bytes.IndexByte(target, '?'); qi != -1 {
		path, query = target[:qi], target[qi+1:]
	} else {
		path = target
	}

	head := &Head{
		Method:        method,
		Path:          path,
		Query:         query,
		ContentLength: -1,
	}

	pos := lineEnd + 2
	var sawContentLength, sawTransferEncoding bool
	for pos < len(buf) {
		if buf[pos] == '\r' && pos+1 < len(buf) && buf[pos+1] == '\n' {
			break
		}
		end := bytes.Index(buf[pos:], crlf)
		if end == -1 {
			return nil, ErrInvalidHeader
		}
		end += pos
		hline := buf[pos:end]
		colon := bytes.IndexByte(hline, ':')
		if colon <= 0 {
			return nil, ErrInvalidHeader
		}
		name := hline[:colon]
		if bytes.IndexByte(name, ' ') != -1 || bytes.IndexByte(name, '\t') != -1 {
			return nil, ErrInvalidHeader
		}
		value := trimSpace(hline[colon+1:])
		head.Headers = append(head.Headers, HeaderField{Name: name, Value: value})

		switch {
		case equalFold(name, bContentLength):
			n, ok := parseUint(value)
			if !ok {
				return nil, ErrInvalidHeader
			}
			if sawContentLength && head.ContentLength != n {
				return nil, ErrInvalidHeader
			}
			sawContentLength = true
			head.ContentLength = n
		case equalFold(name, bTransferEnc):
			sawTransferEncoding = true
			if !equalFold(value, bIdentity) {
				// spec.md §4.1: only "identity" Transfer-Encoding is accepted;
				// chunked and anything else get 501 Not Implemented.
				return nil, ErrNotImplemented
			}
		case equalFold(name, bConnection):
			if equalFold(value, bClose) {
				head.Close = true
			}
		}

		pos = end + 2
	}

	if sawContentLength && sawTransferEncoding {
		return nil, ErrInvalidHeader
	}

	return head, nil
}

func trimSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

func equalFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ac, bc := a[i], b[i]
		if ac >= 'A' && ac <= 'Z' {
			ac += 32
		}
		if bc >= 'A' && bc <= 'Z' {
			bc += 32
		}
		if ac != bc {
			return false
		}
	}
	return true
}

func parseUint(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
		if n < 0 {
			return 0, false
		}
	}
	return n, true
}
