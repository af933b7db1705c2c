package kafka

import (
	"context"
	"math/rand"
	"time"
)

// backoff — экспоненциальная пауза с equal-jitter: половина задержки фиксирована,
// вторая половина случайная. Не потокобезопасен: живёт внутри одного цикла Run.
type backoff struct {
	initial time.Duration
	max     time.Duration
	cur     time.Duration
	rnd     *rand.Rand
}

func newBackoff(initial, maxDelay time.Duration, rnd *rand.Rand) *backoff {
	return &backoff{initial: initial, max: maxDelay, rnd: rnd}
}

// next — пауза перед очередной попыткой; базовая задержка удваивается до max.
func (b *backoff) next() time.Duration {
	if b.cur <= 0 {
		b.cur = b.initial
	}
	d := equalJitter(b.rnd, b.cur)
	b.cur = min(b.cur*2, b.max)
	return d
}

// reset — следующая пауза снова начнётся с initial.
func (b *backoff) reset() { b.cur = 0 }

func equalJitter(rnd *rand.Rand, d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rnd.Int63n(int64(d-half)+1))
}

// sleepCtx — ждёт d; false, если ctx отменили раньше.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
