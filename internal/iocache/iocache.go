// Package iocache is for persisting run history to SQL backends.
package iocache

import (
	"sync"

	"github.com/covlens/covlens/internal/contract"
)

// HistoryStoreManager manages the run-history store instance.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the run-history store.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
