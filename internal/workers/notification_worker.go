package workers

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/events"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NotificationWorkerPool drains the notification stream and stores each event.
type NotificationWorkerPool struct {
	Redis      *redis.Client
	Notifier   services.Notifier
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string

	// ClaimIdle is how long an entry may sit unacknowledged in the pending
	// list before a consumer reclaims it.
	ClaimIdle time.Duration
}

func (p *NotificationWorkerPool) init() error {
	if p.Redis == nil || p.Notifier == nil {
		return errors.New("NotificationWorkerPool missing dependency: Redis/Notifier must be set")
	}
	if p.Stream == "" {
		p.Stream = events.DefaultStream
	}
	if p.Group == "" {
		p.Group = events.DefaultGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.ClaimIdle <= 0 {
		p.ClaimIdle = time.Minute
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}
	return nil
}

// Run blocks until ctx is cancelled and every consumer has returned.
func (p *NotificationWorkerPool) Run(ctx context.Context) error {
	if err := p.init(); err != nil {
		return err
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.runConsumer(ctx, consumer)
		}()
	}
	p.Logger.WithFields(logrus.Fields{"stream": p.Stream, "workers": p.NumWorkers}).Info("notification workers started")

	wg.Wait()
	return nil
}

func (p *NotificationWorkerPool) runConsumer(ctx context.Context, consumer string) {
	var lastClaim time.Time
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if time.Since(lastClaim) >= p.ClaimIdle {
			lastClaim = time.Now()
			p.reclaim(ctx, consumer)
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("stream read failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			p.ack(ctx, p.process(ctx, stream.Messages))
		}
	}
}

// reclaim takes over entries another consumer read but never acknowledged,
// ex: the insert failed or the process died mid-message.
func (p *NotificationWorkerPool) reclaim(ctx context.Context, consumer string) {
	start := "0-0"
	for {
		msgs, next, err := p.Redis.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   p.Stream,
			Group:    p.Group,
			Consumer: consumer,
			MinIdle:  p.ClaimIdle,
			Start:    start,
			Count:    10,
		}).Result()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, redis.Nil) {
				p.Logger.WithError(err).WithField("consumer", consumer).Warn("pending reclaim failed")
			}
			return
		}
		if len(msgs) > 0 {
			p.Logger.WithFields(logrus.Fields{"consumer": consumer, "count": len(msgs)}).Info("reclaimed pending notifications")
			p.ack(ctx, p.process(ctx, msgs))
		}
		if next == "" || next == "0-0" {
			return
		}
		start = next
	}
}

// process handles msgs and returns the ids that are finished with.
func (p *NotificationWorkerPool) process(ctx context.Context, msgs []redis.XMessage) []string {
	done := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if p.handleMsg(ctx, msg) {
			done = append(done, msg.ID)
		}
	}
	return done
}

func (p *NotificationWorkerPool) ack(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := p.Redis.XAck(ctx, p.Stream, p.Group, ids...).Err(); err != nil {
		p.Logger.WithError(err).WithField("count", len(ids)).Warn("stream ack failed")
	}
}

// handleMsg reports whether msg can be acknowledged. Events that fail to store
// stay pending for a later reclaim. Malformed or invalid events are dropped.
func (p *NotificationWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) bool {
	log := p.Logger.WithField("redis_id", msg.ID)

	ev, err := events.DecodeEvent(msg.Values)
	if err != nil {
		log.WithError(err).Warn("dropping malformed notification event")
		return true
	}
	log = log.WithFields(logrus.Fields{"user_id": ev.UserID, "type": ev.Type})

	if err := p.Notifier.Notify(ctx, ev); err != nil {
		if utils.IsCode(err, utils.CodeInvalidArgument) {
			log.WithError(err).Warn("dropping invalid notification event")
			return true
		}
		log.WithError(err).Error("failed to store notification, left pending for retry")
		return false
	}
	log.Debug("notification stored")
	return true
}
