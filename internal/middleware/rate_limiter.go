package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"simrs-backend/pkg/utils"
)

// IPRateLimiter menyimpan daftar limiter untuk setiap IP
type IPRateLimiter struct {
	ips  map[string]*visitor
	mu   sync.Mutex
	r    rate.Limit // Rate: berapa request per detik
	b    int        // Burst: toleransi lonjakan sesaat
	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter membuat instance limiter baru dan menjalankan cleanup di background.
// Panggil Stop saat server dimatikan.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		ips:  make(map[string]*visitor),
		r:    r,
		b:    b,
		ttl:  3 * time.Minute,
		stop: make(chan struct{}),
	}

	go i.cleanupVisitors(time.Minute)

	return i
}

// GetLimiter mengambil/membuat limiter untuk IP tertentu
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.ips[ip]
	if !exists {
		limiter := rate.NewLimiter(i.r, i.b)
		i.ips[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	// Update waktu terakhir akses
	v.lastSeen = time.Now()
	return v.limiter
}

// Stop menghentikan goroutine cleanup
func (i *IPRateLimiter) Stop() {
	i.once.Do(func() { close(i.stop) })
}

// cleanupVisitors menghapus IP yang sudah lama tidak aktif agar hemat RAM
func (i *IPRateLimiter) cleanupVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-i.stop:
			return
		case <-ticker.C:
			i.evict(time.Now())
		}
	}
}

func (i *IPRateLimiter) evict(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) > i.ttl {
			delete(i.ips, ip)
		}
	}
}

func (i *IPRateLimiter) size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// RateLimitMiddleware tolak request kalau IP melebihi kuota
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			utils.APIResponse(c, http.StatusTooManyRequests, false, "Terlalu banyak request, coba lagi sebentar.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
