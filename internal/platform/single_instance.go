package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strconv"
)

// Tray processes sharing one config directory would poll and write the same
// database, so each lock name maps to a loopback port that only one process
// can bind.
const (
	lockPortBase = 20000
	lockPortSpan = 20000
)

// ErrAlreadyRunning indicates another tray already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceLock is a held single-instance lock.
type InstanceLock struct {
	name     string
	listener net.Listener
}

// AcquireSingleInstance takes the lock for name.
func AcquireSingleInstance(name string) (*InstanceLock, error) {
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(PortFromName(name)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is locked on %s (%v)", ErrAlreadyRunning, name, address, err)
	}
	return &InstanceLock{name: name, listener: listener}, nil
}

// Name returns the lock name.
func (lock *InstanceLock) Name() string {
	if lock == nil {
		return ""
	}
	return lock.name
}

// Address returns the bound loopback address, empty once released.
func (lock *InstanceLock) Address() string {
	if lock == nil || lock.listener == nil {
		return ""
	}
	return lock.listener.Addr().String()
}

// Release frees the lock. Releasing twice is a no-op.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	listener := lock.listener
	lock.listener = nil
	return listener.Close()
}

// PortFromName hashes name onto [lockPortBase, lockPortBase+lockPortSpan).
func PortFromName(name string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(name))
	return lockPortBase + int(hash.Sum32()%lockPortSpan)
}
