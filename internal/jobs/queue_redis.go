// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/constants"
)

// RedisQueue is a single Redis list: producers LPUSH, the worker BRPOP, so
// jobs come out in enqueue order.
type RedisQueue struct {
	client      *redis.Client
	key         string
	pollTimeout time.Duration
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{
		client:      client,
		key:         constants.RedisKeyJobQueue,
		pollTimeout: constants.JobPollTimeout,
	}
}

func (queue *RedisQueue) Enqueue(context context.Context, envelope Envelope) error {
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := queue.client.LPush(context, queue.key, encoded).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (queue *RedisQueue) Dequeue(context context.Context) (Envelope, bool, error) {
	result, err := queue.client.BRPop(context, queue.pollTimeout, queue.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Envelope{}, false, nil
		}
		return Envelope{}, false, err
	}

	// BRPOP returns [key, value].
	if len(result) != 2 {
		return Envelope{}, false, errors.New("jobs: unexpected BRPOP reply shape")
	}

	var envelope Envelope
	if err := json.Unmarshal([]byte(result[1]), &envelope); err != nil {
		return Envelope{}, false, err
	}
	return envelope, true, nil
}
