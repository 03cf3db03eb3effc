package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
)

const (
	defaultQueueSize    = 100
	defaultLockTimeout  = 30 * time.Second
	lockAcquireAttempts = 3
	lockRetryBackoff    = 50 * time.Millisecond
)

// ErrManagerClosed is returned for jobs submitted after Shutdown
var ErrManagerClosed = fmt.Errorf("%w: transaction manager is shut down", errs.ErrInternalServer)

// Job is a balance-changing unit of work for one user
type Job func(ctx context.Context) (*entity.Transaction, error)

// TransactionManager runs jobs for the same user one at a time, in arrival
// order, while holding that user's lock
type TransactionManager struct {
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	userLockRepo persistence.UserLockRepository
	lockTimeout  time.Duration
	queueSize    int

	// User-based job queues for strict ordering
	userQueues     sync.Map // map[uint64]chan *jobRequest
	queueWaitGroup sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// jobRequest represents a queued job
type jobRequest struct {
	ctx        context.Context
	userID     uint64
	job        Job
	resultChan chan *jobResult
}

// jobResult represents the outcome of a processed job
type jobResult struct {
	transaction *entity.Transaction
	err         error
}

// NewTransactionManager creates a new transaction manager. userLockRepo may be
// nil, in which case only in-process ordering applies.
func NewTransactionManager(
	userLockRepo persistence.UserLockRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionManager {
	return &TransactionManager{
		logger:       logger,
		timeProvider: timeProvider,
		userLockRepo: userLockRepo,
		lockTimeout:  defaultLockTimeout,
		queueSize:    defaultQueueSize,
	}
}

// WithLockTimeout sets how long a user lock is held before it expires
func (m *TransactionManager) WithLockTimeout(timeout time.Duration) *TransactionManager {
	if timeout > 0 {
		m.lockTimeout = timeout
	}
	return m
}

// WithQueueSize sets the per-user queue capacity
func (m *TransactionManager) WithQueueSize(size int) *TransactionManager {
	if size > 0 {
		m.queueSize = size
	}
	return m
}

// Enqueue adds a job to the user's queue and waits for its result
func (m *TransactionManager) Enqueue(ctx context.Context, userID uint64, job Job) (*entity.Transaction, error) {
	if job == nil {
		panic("transaction job cannot be nil")
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, ErrManagerClosed
	}

	resultChan := make(chan *jobResult, 1)

	// Get or create queue for this user
	queueIface, loaded := m.userQueues.LoadOrStore(userID, make(chan *jobRequest, m.queueSize))
	queue, ok := queueIface.(chan *jobRequest)
	if !ok {
		m.mu.RUnlock()
		m.logger.Error("Failed to type assert queue channel", map[string]any{"user_id": userID})
		return nil, errs.ErrInternalServer
	}

	// Start worker if this is a new queue
	if !loaded {
		m.logger.Debug("Starting transaction queue worker for user", map[string]any{
			"user_id": userID,
		})
		m.queueWaitGroup.Add(1)
		go m.processUserJobs(userID, queue)
	}

	select {
	case queue <- &jobRequest{ctx: ctx, userID: userID, job: job, resultChan: resultChan}:
		m.mu.RUnlock()
	case <-ctx.Done():
		m.mu.RUnlock()
		m.logger.Warn("Context canceled while enqueueing job", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}

	select {
	case result := <-resultChan:
		return result.transaction, result.err
	case <-ctx.Done():
		m.logger.Warn("Context canceled while waiting for job result", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

// processUserJobs is the worker goroutine for one user's queue
func (m *TransactionManager) processUserJobs(userID uint64, queue chan *jobRequest) {
	defer m.queueWaitGroup.Done()

	for req := range queue {
		// Skip jobs whose caller already gave up
		if err := req.ctx.Err(); err != nil {
			req.resultChan <- &jobResult{err: err}
			continue
		}

		tx, err := m.runLocked(req)
		req.resultChan <- &jobResult{transaction: tx, err: err}
	}

	m.logger.Debug("Transaction queue worker stopped", map[string]any{
		"user_id": userID,
	})
}

// runLocked executes a job while holding the user's cross-process lock
func (m *TransactionManager) runLocked(req *jobRequest) (*entity.Transaction, error) {
	if m.userLockRepo == nil {
		return req.job(req.ctx)
	}

	if err := m.acquire(req.ctx, req.userID); err != nil {
		return nil, err
	}
	defer func() {
		// release with a fresh context so a canceled request still frees the lock
		releaseCtx, cancel := m.timeProvider.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.userLockRepo.ReleaseLock(releaseCtx, req.userID); err != nil {
			m.logger.Error("Failed to release user lock", map[string]any{
				"user_id": req.userID,
				"error":   err.Error(),
			})
		}
	}()

	return req.job(req.ctx)
}

func (m *TransactionManager) acquire(ctx context.Context, userID uint64) error {
	var err error
	for attempt := 1; attempt <= lockAcquireAttempts; attempt++ {
		err = m.userLockRepo.AcquireLock(ctx, userID, m.lockTimeout)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrUserLocked) {
			return err
		}

		if attempt == lockAcquireAttempts {
			break
		}

		m.logger.Debug("User lock busy, retrying", map[string]any{
			"user_id": userID,
			"attempt": attempt,
		})
		select {
		case <-time.After(time.Duration(attempt) * lockRetryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Shutdown stops all worker goroutines after they drain their queues
func (m *TransactionManager) Shutdown() {
	m.logger.Info("Shutting down transaction manager", nil)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.userQueues.Range(func(_, queueIface any) bool {
		if queue, ok := queueIface.(chan *jobRequest); ok {
			close(queue)
		}
		return true
	})
	m.mu.Unlock()

	m.queueWaitGroup.Wait()
	m.logger.Info("Transaction manager shut down successfully", nil)
}
