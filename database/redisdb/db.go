// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package redisdb

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
)

const (
	// Name is the name of this database for database switches
	Name = "redis"

	DefaultNamespace = "yieldoracle"
	DefaultTimeout   = 5 * time.Second
)

var (
	_ database.Database = (*Database)(nil)
	_ database.Batch    = (*batch)(nil)
)

type Config struct {
	Addr      string        `json:"addr"`
	Password  string        `json:"password"`
	DB        int           `json:"db"`
	Namespace string        `json:"namespace"`
	Timeout   time.Duration `json:"timeout"`
}

// Database stores every key as a redis string under [namespace]:.
type Database struct {
	client    redis.UniversalClient
	namespace string
	timeout   time.Duration

	lock   sync.RWMutex
	closed bool
}

func New(config Config) *Database {
	return NewWithClient(
		redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
		config.Namespace,
		config.Timeout,
	)
}

// NewWithClient wraps an existing client. The client is closed when the
// database is closed.
func NewWithClient(client redis.UniversalClient, namespace string, timeout time.Duration) *Database {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Database{
		client:    client,
		namespace: namespace,
		timeout:   timeout,
	}
}

func (db *Database) key(key []byte) string {
	return db.namespace + ":" + string(key)
}

func (db *Database) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), db.timeout)
}

func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return false, database.ErrClosed
	}

	ctx, cancel := db.context()
	defer cancel()

	n, err := db.client.Exists(ctx, db.key(key)).Result()
	return n > 0, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}

	ctx, cancel := db.context()
	defer cancel()

	value, err := db.client.Get(ctx, db.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, database.ErrNotFound
	}
	return value, err
}

func (db *Database) Put(key []byte, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}

	ctx, cancel := db.context()
	defer cancel()

	return db.client.Set(ctx, db.key(key), value, 0).Err()
}

func (db *Database) Delete(key []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}

	ctx, cancel := db.context()
	defer cancel()

	return db.client.Del(ctx, db.key(key)).Err()
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	return db.client.Close()
}

func (db *Database) HealthCheck(ctx context.Context) (interface{}, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	return nil, db.client.Ping(ctx).Err()
}

type keyValue struct {
	key    string
	value  []byte
	delete bool
}

// batch queues writes and flushes them in a single MULTI/EXEC transaction.
type batch struct {
	db   *Database
	ops  []keyValue
	size int
}

func (b *batch) Put(key, value []byte) error {
	b.ops = append(b.ops, keyValue{
		key:   b.db.key(key),
		value: append([]byte(nil), value...),
	})
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, keyValue{
		key:    b.db.key(key),
		delete: true,
	})
	b.size += len(key)
	return nil
}

func (b *batch) Size() int {
	return b.size
}

func (b *batch) Write() error {
	b.db.lock.RLock()
	defer b.db.lock.RUnlock()

	if b.db.closed {
		return database.ErrClosed
	}
	if len(b.ops) == 0 {
		return nil
	}

	ctx, cancel := b.db.context()
	defer cancel()

	pipe := b.db.client.TxPipeline()
	for _, op := range b.ops {
		if op.delete {
			pipe.Del(ctx, op.key)
		} else {
			pipe.Set(ctx, op.key, op.value, 0)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (b *batch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}
