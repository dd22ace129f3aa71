package storage

// MemoryStore is a BlobStore that lives only as long as the process.
type MemoryStore struct {
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
