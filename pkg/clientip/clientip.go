package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted, in order, before RemoteAddr. Only list
// headers that a proxy in front of the server overwrites.
var DefaultHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// FromRequest returns the client address of r. The first valid address in
// the first header that carries one wins; multi-valued headers such as
// X-Forwarded-For are read left to right. RemoteAddr is the fallback. An
// empty string means no valid address was found.
func FromRequest(r *http.Request, headers ...string) string {
	for _, h := range headers {
		for v := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip, ok := parse(v); ok {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ip, _ := parse(host)
	return ip
}

func parse(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", false
	}
	return addr.Unmap().WithZone("").String(), true
}
