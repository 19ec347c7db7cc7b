package store

import (
	"sync"
	"time"

	"talentgate/assess/internal/models"
)

// AssessmentCache holds issued assessments in memory between generation and
// evaluation. TTL-bounded so abandoned assessments do not accumulate; the
// database record is the durable copy.
type AssessmentCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
}

type cacheEntry struct {
	assessment *models.AssessmentDefinition
	expiresAt  time.Time
}

// NewAssessmentCache creates a cache with the given TTL and starts its
// background cleanup.
func NewAssessmentCache(ttl time.Duration) *AssessmentCache {
	c := &AssessmentCache{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
	}

	go c.cleanupLoop()

	return c
}

// Set stores an assessment under its ID.
func (c *AssessmentCache) Set(assessment *models.AssessmentDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[assessment.ID] = &cacheEntry{
		assessment: assessment,
		expiresAt:  time.Now().Add(c.ttl),
	}
}

// Get retrieves an assessment if it exists and hasn't expired.
func (c *AssessmentCache) Get(assessmentID string) (*models.AssessmentDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache[assessmentID]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.assessment, true
}

// Delete removes an assessment from the cache.
func (c *AssessmentCache) Delete(assessmentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, assessmentID)
}

// cleanupLoop runs periodically to remove expired entries.
func (c *AssessmentCache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *AssessmentCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, entry := range c.cache {
		if now.After(entry.expiresAt) {
			delete(c.cache, id)
		}
	}
}

// Size returns the current number of cached assessments.
func (c *AssessmentCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.cache)
}
