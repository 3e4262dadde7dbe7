package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// WriteLockKey returns the Redis key guarding writers of a scope
func (r *CacheKeyStruct) WriteLockKey(scope string) string {
	return fmt.Sprintf("scheduler:lock:%s", scope)
}

// TermScheduleChannel returns the Redis PubSub channel carrying schedule events of a term
func (r *CacheKeyStruct) TermScheduleChannel(term string) string {
	return fmt.Sprintf("scheduler:term:%s:events", term)
}

var CacheKey = NewCacheKeyStruct()
