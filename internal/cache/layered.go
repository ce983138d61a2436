package cache

import "time"

// Layered reads through memory into disk, promoting disk hits
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates a memory+disk cache
func NewLayered(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL, 10*time.Minute),
		disk:   NewDisk(diskDir, diskTTL),
	}
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if v, ok := l.memory.Get(key); ok {
		return v, true
	}

	if v, ok := l.disk.Get(key); ok {
		l.memory.Set(key, v, 0)
		return v, true
	}

	return nil, false
}

func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

func (l *Layered) Delete(key string) error {
	l.memory.Delete(key)
	l.disk.Delete(key)
	return nil
}

func (l *Layered) Clear() error {
	l.memory.Clear()
	return l.disk.Clear()
}
