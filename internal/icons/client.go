package icons

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

var (
	ErrBlockedAddress = errors.New("icon URL resolves to a non-public address")
	ErrRedirect       = errors.New("icon URL redirects are not followed")
)

// PublicClient is the client for server-side URL imports. It only dials
// public unicast addresses, checked after DNS resolution, and never
// follows redirects.
func PublicClient() *http.Client {
	d := &net.Dialer{Timeout: DefaultTimeout, Control: refuseNonPublic}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = nil
	tr.DialContext = d.DialContext
	return &http.Client{
		Transport: tr,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return ErrRedirect
		},
	}
}

func refuseNonPublic(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(host); ip == nil || !publicIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func publicIP(ip net.IP) bool {
	switch {
	case ip.IsUnspecified(), ip.IsLoopback(), ip.IsPrivate(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	}
	return true
}
