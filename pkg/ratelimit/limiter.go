package ratelimit

import (
	"sync"
	"time"
)

// Limiter sliding-window счетчик неудачных попыток на пару (identity, origin).
// Решение allow/deny и инкремент выполняются атомарно под одним мьютексом —
// тот же паттерн "atomic check-and-increment", что и в протоколе бронирования,
// только без хранилища.
type Limiter struct {
	mu       sync.Mutex
	window   time.Duration
	limit    int
	attempts map[key][]time.Time
	now      func() time.Time
}

type key struct {
	identity string
	origin   string
}

// New создает limiter: не более limit событий на (identity, origin)
// в скользящем окне window
func New(window time.Duration, limit int) *Limiter {
	return &Limiter{
		window:   window,
		limit:    limit,
		attempts: make(map[key][]time.Time),
		now:      time.Now,
	}
}

// Allow возвращает true, если пара (identity, origin) еще не исчерпала лимит
// в текущем окне. Не изменяет состояние.
func (l *Limiter) Allow(identity, origin string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key{identity: identity, origin: origin}
	return len(l.prune(k, l.now())) < l.limit
}

// Record регистрирует неудачную попытку и возвращает true, если после нее
// лимит еще не превышен. Проверка и инкремент атомарны.
func (l *Limiter) Record(identity, origin string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	k := key{identity: identity, origin: origin}

	recent := l.prune(k, now)
	if len(recent) >= l.limit {
		l.attempts[k] = recent
		return false
	}

	l.attempts[k] = append(recent, now)
	return true
}

// Reset сбрасывает счетчик для пары (identity, origin)
// Вызывается после успешной аутентификации
func (l *Limiter) Reset(identity, origin string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key{identity: identity, origin: origin})
}

// prune отбрасывает события, вышедшие за окно. Вызывать под мьютексом.
func (l *Limiter) prune(k key, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.attempts[k][:0:0]
	for _, t := range l.attempts[k] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 {
		delete(l.attempts, k)
		return nil
	}
	return recent
}
