package queue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const popTimeout = 5 * time.Second

// Message is one unit of queued work.
type Message struct {
	Type string
	Body []byte
}

// Queue decouples attendance writes from count refreshes. The API publishes,
// the worker consumes.
type Queue interface {
	Publish(ctx context.Context, msg Message) error
	Consume(ctx context.Context) (<-chan Message, error)
}

// InMemory is the single-process backend used in development and tests.
type InMemory struct {
	ch chan Message
}

// NewInMemory builds a queue that buffers up to size messages.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan Message, size)}
}

// Publish blocks when the buffer is full until a consumer drains it or the
// context ends.
func (q *InMemory) Publish(ctx context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume yields messages until the context ends.
func (q *InMemory) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-q.ch:
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// RedisQueue is the shared backend, a Redis list pushed on the left and
// popped blocking on the right.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue builds a queue over the named list.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "brigadeattend:counts"
	}
	return &RedisQueue{client: client, key: key}
}

// Publish appends a message to the list.
func (q *RedisQueue) Publish(ctx context.Context, msg Message) error {
	return q.client.LPush(ctx, q.key, serialize(msg)).Err()
}

// Consume polls with BRPOP until the context ends. Transient Redis errors are
// swallowed and retried so a short outage does not kill the worker.
func (q *RedisQueue) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for ctx.Err() == nil {
			res, err := q.client.BRPop(ctx, popTimeout, q.key).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || ctx.Err() == nil {
					continue
				}
				return
			}
			// BRPOP returns [key, value]
			if len(res) != 2 {
				continue
			}
			msg, err := deserialize(res[1])
			if err != nil {
				continue
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Messages travel as "type|body"; bodies may themselves contain separators,
// so only the first one splits.
func serialize(msg Message) string {
	return msg.Type + "|" + string(msg.Body)
}

func deserialize(s string) (Message, error) {
	typ, body, found := strings.Cut(s, "|")
	if !found {
		return Message{}, errors.New("malformed queue message")
	}
	return Message{Type: typ, Body: []byte(body)}, nil
}
