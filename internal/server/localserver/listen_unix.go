//go:build unix

package localserver

import (
	"net"
	"sync"
	"syscall"
)

var umaskMu sync.Mutex

// listenPrivate creates the socket with a 0077 umask so it is never
// reachable by other users, not even before the caller's Chmod.
func listenPrivate(path string) (net.Listener, error) {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	old := syscall.Umask(0077)
	defer syscall.Umask(old)
	return net.Listen("unix", path)
}
