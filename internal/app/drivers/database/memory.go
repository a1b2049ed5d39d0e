package database

import (
	"context"
	"sync"
)

type memoryTxKey struct{}

type memoryTx struct {
	undo []func()
}

// MemoryDB is a process-local document store. Every operation runs under one
// mutex, so a transaction observes and writes a consistent snapshot. Writes
// made inside a failed transaction are rolled back in reverse order.
type MemoryDB struct {
	mu          sync.Mutex
	collections map[string]map[string]interface{}
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		collections: make(map[string]map[string]interface{}),
	}
}

// RunInTransaction joins an enclosing transaction when ctx already carries one.
func (db *MemoryDB) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return fn(ctx)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tx := &memoryTx{}
	err := fn(context.WithValue(ctx, memoryTxKey{}, tx))
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
	}
	return err
}

func (db *MemoryDB) Get(ctx context.Context, collection, id string) (interface{}, bool) {
	defer db.lock(ctx)()
	doc, ok := db.collection(collection)[id]
	return doc, ok
}

func (db *MemoryDB) Put(ctx context.Context, collection, id string, doc interface{}) {
	defer db.lock(ctx)()
	db.put(ctx, collection, id, doc)
}

// Insert stores doc only when id is free and reports whether it did.
func (db *MemoryDB) Insert(ctx context.Context, collection, id string, doc interface{}) bool {
	defer db.lock(ctx)()
	if _, exists := db.collection(collection)[id]; exists {
		return false
	}
	db.put(ctx, collection, id, doc)
	return true
}

func (db *MemoryDB) Delete(ctx context.Context, collection, id string) bool {
	defer db.lock(ctx)()
	docs := db.collection(collection)
	previous, existed := docs[id]
	if !existed {
		return false
	}
	delete(docs, id)
	db.recordUndo(ctx, func() { docs[id] = previous })
	return true
}

// Scan returns every document of the collection accepted by match.
func (db *MemoryDB) Scan(ctx context.Context, collection string, match func(doc interface{}) bool) []interface{} {
	defer db.lock(ctx)()
	var result []interface{}
	for _, doc := range db.collection(collection) {
		if match == nil || match(doc) {
			result = append(result, doc)
		}
	}
	return result
}

// Update applies mutate to every matching document and stores the result.
func (db *MemoryDB) Update(ctx context.Context, collection string, match func(doc interface{}) bool, mutate func(doc interface{}) interface{}) int {
	defer db.lock(ctx)()
	updated := 0
	for id, doc := range db.collection(collection) {
		if match(doc) {
			db.put(ctx, collection, id, mutate(doc))
			updated++
		}
	}
	return updated
}

func (db *MemoryDB) put(ctx context.Context, collection, id string, doc interface{}) {
	docs := db.collection(collection)
	previous, existed := docs[id]
	docs[id] = doc
	db.recordUndo(ctx, func() {
		if existed {
			docs[id] = previous
		} else {
			delete(docs, id)
		}
	})
}

func (db *MemoryDB) recordUndo(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func (db *MemoryDB) collection(name string) map[string]interface{} {
	docs, ok := db.collections[name]
	if !ok {
		docs = make(map[string]interface{})
		db.collections[name] = docs
	}
	return docs
}

// lock is a no-op inside a transaction, which already holds the mutex.
func (db *MemoryDB) lock(ctx context.Context) func() {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}
