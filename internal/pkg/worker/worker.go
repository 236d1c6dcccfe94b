package worker

import (
	"context"
	"sync"
	"time"

	"vidtube/pkg/logger"
	"vidtube/pkg/metrics"

	"go.uber.org/zap"
)

// Deleter 删除外部媒体对象
type Deleter interface {
	Delete(ctx context.Context, objectURL string) error
}

// CleanupTask 待删除的媒体对象
type CleanupTask struct {
	URL   string
	Retry int // 重试次数
}

// Options 清理池参数
type Options struct {
	WorkerNum  int
	BufferSize int
	MaxRetry   int
	// Backoff 第 n 次重试前等待 n * Backoff
	Backoff time.Duration
	// TaskTimeout 单次删除的超时
	TaskTimeout time.Duration
	Metrics     *metrics.MetricsCollector
}

// WorkerPool 异步删除媒体对象，失败任务进入重试队列
type WorkerPool struct {
	TaskQueue  chan CleanupTask
	RetryQueue chan CleanupTask // 重试队列
	store      Deleter
	opts       Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewWorkerPool(store Deleter, opts Options) *WorkerPool {
	if opts.WorkerNum <= 0 {
		opts.WorkerNum = 1
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 64
	}
	if opts.MaxRetry < 0 {
		opts.MaxRetry = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = 30 * time.Second
	}
	retrySize := opts.BufferSize / 2
	if retrySize == 0 {
		retrySize = 1
	}
	return &WorkerPool{
		TaskQueue:  make(chan CleanupTask, opts.BufferSize),
		RetryQueue: make(chan CleanupTask, retrySize),
		store:      store,
		opts:       opts,
	}
}

// Start 启动 worker，只有 Stop 会让其退出；ctx 的取消不会传递进来，
// 停机期间仍在处理的请求入队的清理任务要等 Stop 时排空
func (p *WorkerPool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))
	for i := 0; i < p.opts.WorkerNum; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	// 启动重试处理协程
	p.wg.Add(1)
	go p.retryWorker()
	logger.Log.Info("media cleanup pool started", zap.Int("workers", p.opts.WorkerNum))
}

// Stop 停止接收新任务，处理完主队列中剩余的任务后返回
func (p *WorkerPool) Stop() {
	p.once.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
		p.wg.Wait()
		logger.Log.Info("media cleanup pool stopped")
	})
}

// Enqueue 投递删除任务，队列满或已停止时丢弃并记录
func (p *WorkerPool) Enqueue(urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		p.AddTask(CleanupTask{URL: u})
	}
}

func (p *WorkerPool) AddTask(task CleanupTask) {
	if p.ctx != nil && p.ctx.Err() != nil {
		p.logFailedTask(task, p.ctx.Err())
		return
	}
	select {
	case p.TaskQueue <- task:
		p.opts.Metrics.SetCleanupQueueDepth(len(p.TaskQueue))
	default:
		logger.Log.Warn("media cleanup queue full", zap.String("url", task.URL))
		p.logFailedTask(task, nil)
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.TaskQueue:
			p.handle(id, task)
		case <-p.ctx.Done():
			p.drain(id)
			return
		}
	}
}

// drain 停止时处理主队列中剩余任务，不再重试
func (p *WorkerPool) drain(id int) {
	for {
		select {
		case task := <-p.TaskQueue:
			if err := p.processTask(task); err != nil {
				p.logFailedTask(task, err)
			}
		default:
			return
		}
	}
}

func (p *WorkerPool) handle(id int, task CleanupTask) {
	p.opts.Metrics.SetCleanupQueueDepth(len(p.TaskQueue))
	err := p.processTask(task)
	if err == nil {
		return
	}
	logger.Log.Warn("media cleanup failed",
		zap.Int("worker", id),
		zap.String("url", task.URL),
		zap.Int("attempt", task.Retry+1),
		zap.Error(err),
	)

	// 如果未达到最大重试次数，加入重试队列
	if task.Retry >= p.opts.MaxRetry {
		p.logFailedTask(task, err)
		return
	}
	task.Retry++
	select {
	case p.RetryQueue <- task:
	default:
		p.logFailedTask(task, err)
	}
}

func (p *WorkerPool) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.RetryQueue:
			// 延迟重试，避免立即重试
			timer := time.NewTimer(time.Duration(task.Retry) * p.opts.Backoff)
			select {
			case <-timer.C:
			case <-p.ctx.Done():
				timer.Stop()
				p.logFailedTask(task, p.ctx.Err())
				p.discardRetries()
				return
			}
			select {
			case p.TaskQueue <- task:
			default:
				p.logFailedTask(task, nil)
			}
		case <-p.ctx.Done():
			p.discardRetries()
			return
		}
	}
}

func (p *WorkerPool) discardRetries() {
	for {
		select {
		case task := <-p.RetryQueue:
			p.logFailedTask(task, context.Canceled)
		default:
			return
		}
	}
}

func (p *WorkerPool) processTask(task CleanupTask) error {
	// 父 ctx 可能已取消，单独限时
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.TaskTimeout)
	defer cancel()
	err := p.store.Delete(ctx, task.URL)
	p.opts.Metrics.RecordMediaOperation("cleanup", err)
	return err
}

// logFailedTask 最终放弃的任务只记录日志，由运维按 url 手动清理
func (p *WorkerPool) logFailedTask(task CleanupTask, err error) {
	logger.Log.Error("media cleanup abandoned",
		zap.String("url", task.URL),
		zap.Int("retries", task.Retry),
		zap.Error(err),
	)
}
