// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package actiongate

import (
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorCleanupInterval = time.Minute
	visitorTTL             = 3 * time.Minute
)

// rateLimiter keeps a token bucket per client IP
type rateLimiter struct {
	limit     rate.Limit
	burst     int
	visitors  map[string]*visitor
	mu        sync.Mutex
	doneChan  chan struct{}
	waitGroup sync.WaitGroup
	onceClose sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	rl := &rateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: make(map[string]*visitor),
		doneChan: make(chan struct{}),
	}
	rl.waitGroup.Add(1)
	go rl.cleanupLoop(visitorCleanupInterval)
	return rl
}

// allow consumes a token for ip. When none is available it returns false and the number of
// seconds until one will be
func (rl *rateLimiter) allow(ip string) (bool, int) {
	limiter := rl.visitor(ip)
	reservation := limiter.Reserve()
	if !reservation.OK() {
		return false, 1
	}
	delay := reservation.Delay()
	if delay == 0 {
		return true, 0
	}
	reservation.Cancel()
	return false, max(1, int(math.Ceil(delay.Seconds())))
}

func (rl *rateLimiter) visitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rl.limit, rl.burst),
		}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *rateLimiter) cleanupLoop(interval time.Duration) {
	defer rl.waitGroup.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.doneChan:
			return
		case <-ticker.C:
			rl.sweep(time.Now().Add(-visitorTTL))
		}
	}
}

// sweep forgets visitors not seen since cutoff
func (rl *rateLimiter) sweep(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Close stops the cleanup goroutine and waits for it to exit
func (rl *rateLimiter) Close() {
	rl.onceClose.Do(func() {
		close(rl.doneChan)
		rl.waitGroup.Wait()
	})
}

// clientIP returns the host part of the request's remote address
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
