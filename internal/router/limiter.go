package router

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/radutopala/switchboard/internal/interval"
)

// maxIdleLimiters bounds the per-user map before idle entries are pruned.
const maxIdleLimiters = 1024

type userLimiter struct {
	every time.Duration
	burst int
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newUserLimiter(every time.Duration, burst int) *userLimiter {
	return &userLimiter{
		every:    every,
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// reserve takes a token for userID. When none is available it returns the
// time until one will be.
func (l *userLimiter) reserve(userID string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[userID]
	if !ok {
		if len(l.limiters) >= maxIdleLimiters {
			l.prune(now)
		}
		lim = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.limiters[userID] = lim
	}

	if lim.AllowN(now, 1) {
		return true, 0
	}
	res := lim.ReserveN(now, 1)
	wait := res.DelayFrom(now)
	res.CancelAt(now)
	return false, wait
}

// prune drops limiters that have refilled completely.
func (l *userLimiter) prune(now time.Time) {
	for id, lim := range l.limiters {
		if lim.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, id)
		}
	}
}

func (r *Router) checkRate(resp Responder, i *discordgo.Interaction) error {
	if r.limiter == nil {
		return nil
	}
	userID := UserID(i)
	if userID == "" {
		return nil
	}
	ok, wait := r.limiter.reserve(userID)
	if ok {
		return nil
	}

	r.logger.Debug("interaction rate limited", "user_id", userID, "wait", wait)
	if err := resp.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "You're doing that too often. Try again in " + retryAfter(wait) + ".",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		return fmt.Errorf("%w: responding: %w", ErrRateLimited, err)
	}
	return ErrRateLimited
}

func retryAfter(wait time.Duration) string {
	secs := int64((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return interval.Format(secs, 1)
}
