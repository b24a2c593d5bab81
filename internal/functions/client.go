package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Hosted function names.
const (
	FnSendTenantInvitation  = "send-tenant-invitation"
	FnAdminResetUserPassword = "admin-reset-user-password"
)

type invitationJob struct {
	TenantID int64
	Email    string
	Role     string
}

type worker struct {
	id         int
	workerPool chan chan invitationJob
	jobChannel chan invitationJob
	logger     *slog.Logger
}

func newWorker(id int, workerPool chan chan invitationJob, logger *slog.Logger) *worker {
	return &worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan invitationJob),
		logger:     logger,
	}
}

func (w *worker) start(ctx context.Context, wg *sync.WaitGroup, processFunc func(invitationJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				w.logger.Debug("worker processing invitation", "worker_id", w.id, "email", job.Email)
				processFunc(job)
			case <-ctx.Done():
				w.logger.Debug("worker shutting down", "worker_id", w.id)
				return
			}
		}
	}()
}

type Config struct {
	BaseURL        string
	APIKey         string
	InvokeTimeout  time.Duration
	MaxWorkers     int
	JobQueueSize   int
	WorkerPoolSize int
}

// Client invokes hosted edge functions over HTTP JSON. Invitation sends go
// through a worker pool so a slow mail provider never blocks the request
// path; privileged password resets run synchronously because the caller needs
// the outcome.
type Client struct {
	baseURL       string
	apiKey        string
	invokeTimeout time.Duration
	httpClient    *http.Client
	logger        *slog.Logger

	jobQueue   chan invitationJob
	workerPool chan chan invitationJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewClient(config Config, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 64
	}

	workerPoolSize := config.WorkerPoolSize
	if workerPoolSize <= 0 {
		workerPoolSize = maxWorkers
	}

	invokeTimeout := config.InvokeTimeout
	if invokeTimeout <= 0 {
		invokeTimeout = 10 * time.Second
	}

	client := &Client{
		baseURL:       config.BaseURL,
		apiKey:        config.APIKey,
		invokeTimeout: invokeTimeout,
		httpClient:    &http.Client{Timeout: invokeTimeout},
		logger:        logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan invitationJob, jobQueueSize),
		workerPool: make(chan chan invitationJob, workerPoolSize),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {
		for i := 0; i < c.maxWorkers; i++ {
			w := newWorker(i, c.workerPool, c.logger)
			w.start(c.ctx, &c.wg, c.processInvitationJob)
		}

		go c.dispatch()

		c.logger.Info("functions worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case job := <-c.jobQueue:
			select {
			case jobChannel := <-c.workerPool:
				select {
				case jobChannel <- job:
				case <-c.ctx.Done():
					c.logger.Info("dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down functions client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("functions client shutdown complete")
}

// SendTenantInvitation queues the invitation for background dispatch. A full
// queue is reported so the caller can log the drop; invitation failures are
// never fatal to the enclosing operation.
func (c *Client) SendTenantInvitation(ctx context.Context, tenantID int64, email, role string) error {
	job := invitationJob{TenantID: tenantID, Email: email, Role: role}

	select {
	case c.jobQueue <- job:
		c.logger.Info("invitation queued",
			"tenant_id", tenantID,
			"email", email,
			"queue_length", len(c.jobQueue))
		return nil
	default:
		c.logger.Warn("invitation queue full, dropping send",
			"tenant_id", tenantID,
			"email", email,
			"queue_capacity", cap(c.jobQueue))
		return fmt.Errorf("invitation queue full")
	}
}

func (c *Client) processInvitationJob(job invitationJob) {
	payload := map[string]interface{}{
		"tenant_id": job.TenantID,
		"email":     job.Email,
		"role":      job.Role,
	}

	if err := c.invoke(c.ctx, FnSendTenantInvitation, payload); err != nil {
		c.logger.Warn("invitation send failed",
			"error", err,
			"tenant_id", job.TenantID,
			"email", job.Email)
		return
	}

	c.logger.Info("invitation sent", "tenant_id", job.TenantID, "email", job.Email)
}

// AdminResetUserPassword invokes the privileged reset synchronously.
func (c *Client) AdminResetUserPassword(ctx context.Context, tenantID, userID int64, newPassword string) error {
	payload := map[string]interface{}{
		"tenant_id":    tenantID,
		"user_id":      userID,
		"new_password": newPassword,
	}

	if err := c.invoke(ctx, FnAdminResetUserPassword, payload); err != nil {
		c.logger.Error("password reset function failed",
			"error", err,
			"tenant_id", tenantID,
			"user_id", userID)
		return err
	}

	return nil
}

// invoke posts JSON to /functions/v1/<name> and checks for a 2xx response.
func (c *Client) invoke(ctx context.Context, name string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal function payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.invokeTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/functions/v1/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create function request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("function request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("function %s returned status %d: %s", name, resp.StatusCode, string(respBody))
	}

	return nil
}
