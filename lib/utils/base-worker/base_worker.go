package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// JobFunc одна итерация фоновой задачи
type JobFunc func(ctx context.Context) error

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
	clock         clockwork.Clock
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
		clock:         clockwork.NewRealClock(),
	}
}

// WithClock подмена часов (для тестов)
func (i *BaseImpl) WithClock(clock clockwork.Clock) *BaseImpl {
	i.clock = clock
	return i
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run выполняет job с заданным интервалом до завершения контекста.
// Ошибка или паника одной итерации не останавливает задачу
func (i BaseImpl) Run(ctx context.Context, job JobFunc) {
	logger := i.GetLogger()
	timer := i.clock.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.Chan():
			started := i.clock.Now()
			if err := i.runSafe(ctx, job); err != nil {
				logger.WithError(err).Error("Ошибка выполнения задачи")
			} else {
				logger.WithField("duration", i.clock.Since(started).String()).Debug("Задача выполнена")
			}
			timer.Reset(i.runInterval)
		}
	}
}

func (i BaseImpl) runSafe(ctx context.Context, job JobFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().WithField("panic_stack", string(debug.Stack())).Error("паника в фоновой задаче")
			err = errors.Errorf("panic: (%v)", r)
		}
	}()
	return job(ctx)
}
