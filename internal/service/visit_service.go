package service

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const visitCounterKey = "deckgen:visit_count"

type IVisitService interface {
	Count(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
}

// visitService keeps a site-wide visit counter. Redis when available,
// otherwise a counter file guarded by a mutex.
type visitService struct {
	rdb      *redis.Client
	filePath string
	mu       sync.Mutex
}

func NewVisitService(rdb *redis.Client, filePath string) IVisitService {
	return &visitService{rdb: rdb, filePath: filePath}
}

func (s *visitService) Count(ctx context.Context) (int64, error) {
	if s.rdb != nil {
		count, err := s.rdb.Get(ctx, visitCounterKey).Int64()
		if err == nil {
			return count, nil
		}
		if err == redis.Nil {
			return 0, nil
		}
		// fall back to the file on redis trouble
	}
	return s.readFile()
}

func (s *visitService) Increment(ctx context.Context) (int64, error) {
	if s.rdb != nil {
		count, err := s.rdb.Incr(ctx, visitCounterKey).Result()
		if err == nil {
			return count, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	count, err := s.readFileLocked()
	if err != nil {
		return 0, err
	}
	count++
	if err := os.WriteFile(s.filePath, []byte(strconv.FormatInt(count, 10)), 0o644); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *visitService) readFile() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readFileLocked()
}

func (s *visitService) readFileLocked() (int64, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	count, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, nil // corrupt counter resets to zero
	}
	return count, nil
}
