package transaction

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/referral-platform/mocks/port/persistence"
)

func TestNewTransactionManager(t *testing.T) {
	logger := quietLogger(t)
	clock := mockcore.FixedClock{At: testNow}

	t.Run("Defaults", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)

		assert.Equal(t, defaultLockTimeout, tm.lockTimeout)
		assert.Equal(t, defaultQueueSize, tm.queueSize)
	})

	t.Run("Options ignore non-positive values", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger).
			WithLockTimeout(0).
			WithQueueSize(-1)

		assert.Equal(t, defaultLockTimeout, tm.lockTimeout)
		assert.Equal(t, defaultQueueSize, tm.queueSize)

		tm.WithLockTimeout(time.Second).WithQueueSize(5)
		assert.Equal(t, time.Second, tm.lockTimeout)
		assert.Equal(t, 5, tm.queueSize)
	})

	t.Run("Nil job panics", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)
		assert.Panics(t, func() {
			_, _ = tm.Enqueue(context.Background(), 1, nil)
		})
	})
}

func TestTransactionManager_Enqueue(t *testing.T) {
	logger := quietLogger(t)
	clock := mockcore.FixedClock{At: testNow}

	t.Run("Returns the job result", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)
		defer tm.Shutdown()

		want := &entity.Transaction{TransactionID: "tx-1"}
		got, err := tm.Enqueue(context.Background(), 1, func(ctx context.Context) (*entity.Transaction, error) {
			return want, nil
		})

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("Propagates job errors", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)
		defer tm.Shutdown()

		got, err := tm.Enqueue(context.Background(), 1, func(ctx context.Context) (*entity.Transaction, error) {
			return nil, errs.ErrInsufficientBalance
		})

		assert.Nil(t, got)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	})

	t.Run("Jobs for one user never overlap", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)
		defer tm.Shutdown()

		var running, maxRunning, done int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := tm.Enqueue(context.Background(), 42, func(ctx context.Context) (*entity.Transaction, error) {
					n := atomic.AddInt32(&running, 1)
					for {
						old := atomic.LoadInt32(&maxRunning)
						if n <= old || atomic.CompareAndSwapInt32(&maxRunning, old, n) {
							break
						}
					}
					time.Sleep(time.Millisecond)
					atomic.AddInt32(&running, -1)
					atomic.AddInt32(&done, 1)
					return nil, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(20), atomic.LoadInt32(&done))
		assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
	})

	t.Run("Jobs from one caller run in submission order", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)
		defer tm.Shutdown()

		var order []int
		for i := 0; i < 5; i++ {
			i := i
			_, err := tm.Enqueue(context.Background(), 7, func(ctx context.Context) (*entity.Transaction, error) {
				order = append(order, i)
				return nil, nil
			})
			require.NoError(t, err)
		}

		assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	})

	t.Run("Canceled context skips the job", func(t *testing.T) {
		tm := NewTransactionManager(nil, clock, logger)
		defer tm.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran atomic.Bool
		_, err := tm.Enqueue(ctx, 1, func(ctx context.Context) (*entity.Transaction, error) {
			ran.Store(true)
			return nil, nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran.Load())
	})
}

func TestTransactionManager_UserLock(t *testing.T) {
	logger := quietLogger(t)
	clock := mockcore.FixedClock{At: testNow}

	t.Run("Holds the lock around the job", func(t *testing.T) {
		lockRepo := mockpersistence.NewMockUserLockRepository(t)
		lockRepo.EXPECT().AcquireLock(mock.Anything, uint64(5), 10*time.Second).Return(nil).Once()
		lockRepo.EXPECT().ReleaseLock(mock.Anything, uint64(5)).Return(nil).Once()

		tm := NewTransactionManager(lockRepo, clock, logger).WithLockTimeout(10 * time.Second)
		defer tm.Shutdown()

		_, err := tm.Enqueue(context.Background(), 5, func(ctx context.Context) (*entity.Transaction, error) {
			return &entity.Transaction{}, nil
		})
		require.NoError(t, err)
	})

	t.Run("Releases the lock when the job fails", func(t *testing.T) {
		lockRepo := mockpersistence.NewMockUserLockRepository(t)
		lockRepo.EXPECT().AcquireLock(mock.Anything, uint64(5), defaultLockTimeout).Return(nil).Once()
		lockRepo.EXPECT().ReleaseLock(mock.Anything, uint64(5)).Return(nil).Once()

		tm := NewTransactionManager(lockRepo, clock, logger)
		defer tm.Shutdown()

		_, err := tm.Enqueue(context.Background(), 5, func(ctx context.Context) (*entity.Transaction, error) {
			return nil, errors.New("boom")
		})
		assert.EqualError(t, err, "boom")
	})

	t.Run("Gives up on a busy lock", func(t *testing.T) {
		lockRepo := mockpersistence.NewMockUserLockRepository(t)
		lockRepo.EXPECT().AcquireLock(mock.Anything, uint64(5), defaultLockTimeout).
			Return(errs.ErrUserLocked).Times(lockAcquireAttempts)

		tm := NewTransactionManager(lockRepo, clock, logger)
		defer tm.Shutdown()

		var ran atomic.Bool
		_, err := tm.Enqueue(context.Background(), 5, func(ctx context.Context) (*entity.Transaction, error) {
			ran.Store(true)
			return nil, nil
		})

		assert.ErrorIs(t, err, errs.ErrUserLocked)
		assert.False(t, ran.Load())
	})

	t.Run("Retries until the lock frees up", func(t *testing.T) {
		lockRepo := mockpersistence.NewMockUserLockRepository(t)
		lockRepo.EXPECT().AcquireLock(mock.Anything, uint64(5), defaultLockTimeout).Return(errs.ErrUserLocked).Once()
		lockRepo.EXPECT().AcquireLock(mock.Anything, uint64(5), defaultLockTimeout).Return(nil).Once()
		lockRepo.EXPECT().ReleaseLock(mock.Anything, uint64(5)).Return(nil).Once()

		tm := NewTransactionManager(lockRepo, clock, logger)
		defer tm.Shutdown()

		_, err := tm.Enqueue(context.Background(), 5, func(ctx context.Context) (*entity.Transaction, error) {
			return &entity.Transaction{}, nil
		})
		require.NoError(t, err)
	})

	t.Run("Other lock errors are returned at once", func(t *testing.T) {
		lockRepo := mockpersistence.NewMockUserLockRepository(t)
		lockRepo.EXPECT().AcquireLock(mock.Anything, uint64(5), defaultLockTimeout).
			Return(errs.ErrDatabaseConnection).Once()

		tm := NewTransactionManager(lockRepo, clock, logger)
		defer tm.Shutdown()

		_, err := tm.Enqueue(context.Background(), 5, func(ctx context.Context) (*entity.Transaction, error) {
			return nil, nil
		})
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestTransactionManager_Shutdown(t *testing.T) {
	logger := quietLogger(t)
	tm := NewTransactionManager(nil, mockcore.FixedClock{At: testNow}, logger)

	_, err := tm.Enqueue(context.Background(), 1, func(ctx context.Context) (*entity.Transaction, error) {
		return nil, nil
	})
	require.NoError(t, err)

	tm.Shutdown()
	// second call is a no-op
	tm.Shutdown()

	_, err = tm.Enqueue(context.Background(), 1, func(ctx context.Context) (*entity.Transaction, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrManagerClosed)
	assert.ErrorIs(t, err, errs.ErrInternalServer)
}
