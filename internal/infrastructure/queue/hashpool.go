// Package queue offloads CPU-bound bcrypt work to a fixed set of workers so
// a burst of sign-ups cannot starve the rest of the request handlers.
package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/metrics"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type hashJob struct {
	compare   bool
	plaintext string
	hashed    string
	reply     chan hashResult
}

type hashResult struct {
	hash  string
	match bool
	err   error
}

// HashPool implements ports.PasswordHasher by delegating each call to one
// of a bounded set of worker goroutines. Callers block until their job
// completes or their context is cancelled.
type HashPool struct {
	jobs   chan hashJob
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

// NewHashPool creates a pool of numWorkers workers around the given hasher.
// If numWorkers <= 0, defaultWorkers is used.
func NewHashPool(numWorkers int, hasher ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	p := &HashPool{
		jobs:   make(chan hashJob, channelBuffer),
		hasher: hasher,
		log:    log,
	}
	for i := 0; i < numWorkers; i++ {
		p.startWorker(i)
	}
	return p
}

// Close stops the workers once all queued jobs have drained.
func (p *HashPool) Close() {
	close(p.jobs)
}

func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, hashJob{plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

func (p *HashPool) Compare(ctx context.Context, plaintext, hashed string) (bool, error) {
	res, err := p.submit(ctx, hashJob{compare: true, plaintext: plaintext, hashed: hashed})
	if err != nil {
		return false, err
	}
	return res.match, res.err
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	job.reply = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}

	select {
	case res := <-job.reply:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

func (p *HashPool) startWorker(id int) {
	go func() {
		for job := range p.jobs {
			start := time.Now()
			var res hashResult
			if job.compare {
				res.match, res.err = p.hasher.Compare(context.Background(), job.plaintext, job.hashed)
			} else {
				res.hash, res.err = p.hasher.Hash(context.Background(), job.plaintext)
			}
			metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
			if res.err != nil {
				p.log.Error().Err(res.err).Int("worker_id", id).Msg("password hashing failed")
			}
			job.reply <- res
		}
	}()
}
