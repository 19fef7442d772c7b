//go:build !unix

package localserver

import "net"

func listenPrivate(path string) (net.Listener, error) {
	return net.Listen("unix", path)
}
