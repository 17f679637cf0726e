package client

//
// cache.go
//

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// RegistrationKey identifies one logical registration: the same schema text
// registered under the same subject always yields the same id.
type RegistrationKey struct {
	Subject string
	Schema  string
	SType   SchemaType
}

func (k RegistrationKey) flightKey() string {
	return fmt.Sprintf("%s|%s|%s", k.Subject, k.SType, k.Schema)
}

// SchemaCache memoizes subject/schema to id mappings and id to compiled
// codec mappings for the lifetime of a client. Registry ids are immutable
// once minted, so entries are never evicted or invalidated.
//
// Concurrent callers for the same key share a single in-flight operation;
// a failure propagates to every waiter and leaves nothing cached, so the
// next call starts from scratch.
type SchemaCache struct {
	mu     sync.RWMutex
	ids    map[RegistrationKey]int
	codecs map[int]Codec

	idFlight    singleflight.Group
	codecFlight singleflight.Group
}

func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		ids:    map[RegistrationKey]int{},
		codecs: map[int]Codec{},
	}
}

// GetOrRegister returns the cached id for the key, or invokes register at
// most once across all concurrent callers and caches its result.
func (c *SchemaCache) GetOrRegister(key RegistrationKey, register func() (int, error)) (int, error) {
	c.mu.RLock()
	id, ok := c.ids[key]
	c.mu.RUnlock()
	if ok {
		cacheHitsTotal.WithLabelValues("ids").Inc()
		return id, nil
	}
	cacheMissesTotal.WithLabelValues("ids").Inc()

	result, err, _ := c.idFlight.Do(key.flightKey(), func() (interface{}, error) {
		// A peer may have finished between the read above and joining the flight
		c.mu.RLock()
		id, ok := c.ids[key]
		c.mu.RUnlock()
		if ok {
			return id, nil
		}

		id, err := register()
		if err != nil {
			return 0, err
		}

		c.mu.Lock()
		c.ids[key] = id
		c.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

// GetOrCompile returns the cached codec for the id, or invokes
// fetchAndCompile at most once across all concurrent callers and caches
// its result.
func (c *SchemaCache) GetOrCompile(id int, fetchAndCompile func() (Codec, error)) (Codec, error) {
	c.mu.RLock()
	codec, ok := c.codecs[id]
	c.mu.RUnlock()
	if ok {
		cacheHitsTotal.WithLabelValues("codecs").Inc()
		return codec, nil
	}
	cacheMissesTotal.WithLabelValues("codecs").Inc()

	result, err, _ := c.codecFlight.Do(strconv.Itoa(id), func() (interface{}, error) {
		c.mu.RLock()
		codec, ok := c.codecs[id]
		c.mu.RUnlock()
		if ok {
			return codec, nil
		}

		codec, err := fetchAndCompile()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.codecs[id] = codec
		c.mu.Unlock()
		return codec, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Codec), nil
}

// StoreCodec primes the codec cache, used after a local compile so the
// first encode for a freshly registered schema skips the registry fetch.
func (c *SchemaCache) StoreCodec(id int, codec Codec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.codecs[id]; !ok {
		c.codecs[id] = codec
	}
}
