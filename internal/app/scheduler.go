package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionCleaner удаляет сессии с истёкшими токенами
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cleaner  SessionCleaner
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(cleaner SessionCleaner, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("cleanup_interval", s.interval))

	s.wg.Add(1)
	go s.runSessionCleanupTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runSessionCleanupTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.cleanupSessions(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupSessions(ctx)
		case <-s.stopChan:
			s.logger.Info("Session cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session cleanup task cancelled")
			return
		}
	}
}

func (s *Scheduler) cleanupSessions(ctx context.Context) {
	removed, err := s.cleaner.CleanupExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("Failed to clean up expired sessions", zap.Error(err))
		return
	}

	if removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int64("count", removed))
	}
}
