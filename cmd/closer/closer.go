package closer

import (
	"sync"

	"github.com/meverselabs/partyround/common/rlog"
)

// Closer is Closer inferface
type Closer interface {
	Close()
}

// CloserFunc adapts a function to a Closer
type CloserFunc func()

// Close calls the function
func (f CloserFunc) Close() {
	f()
}

// Manager closes the registered closers in reverse order of registration
type Manager struct {
	sync.Mutex
	isClosed bool
	names    []string
	closers  []Closer
	done     chan struct{}
}

// NewManager returns a Manager
func NewManager() *Manager {
	return &Manager{
		names:   []string{},
		closers: []Closer{},
		done:    make(chan struct{}),
	}
}

// IsClosed returns it is closed or not
func (cm *Manager) IsClosed() bool {
	cm.Lock()
	defer cm.Unlock()
	return cm.isClosed
}

// Add adds a closer with a name
func (cm *Manager) Add(name string, c Closer) {
	cm.Lock()
	defer cm.Unlock()
	cm.names = append(cm.names, name)
	cm.closers = append(cm.closers, c)
}

// CloseAll closes all closers once
func (cm *Manager) CloseAll() {
	cm.Lock()
	defer cm.Unlock()
	if cm.isClosed {
		return
	}
	cm.isClosed = true
	for i := len(cm.closers) - 1; i >= 0; i-- {
		rlog.Infow("close", "name", cm.names[i])
		cm.closers[i].Close()
	}
	close(cm.done)
}

// Wait waits close all
func (cm *Manager) Wait() {
	<-cm.done
}
