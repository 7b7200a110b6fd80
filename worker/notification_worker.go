package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/queue"
	"sweetcrumb-bakery-api/services/email"
)

// Worker drains the notification queue and sends the corresponding emails.
// Transactional state never depends on it; a lost email leaves orders and
// requests intact.
type Worker struct {
	queue        *queue.Queue
	db           *database.Connection
	emailService email.EmailSender
	shutdown     chan struct{}
	isRunning    bool
}

func NewWorker(q *queue.Queue, db *database.Connection, es email.EmailSender) *Worker {
	return &Worker{
		queue:        q,
		db:           db,
		emailService: es,
		shutdown:     make(chan struct{}),
	}
}

// Start begins processing jobs with the given number of goroutines.
func (w *Worker) Start(concurrency int) {
	w.isRunning = true

	for i := 0; i < concurrency; i++ {
		go w.processJobs(i)
	}
	go w.pumpDelayedJobs()

	log.Printf("Started %d worker goroutines", concurrency)
}

// Stop signals the worker to stop processing jobs.
func (w *Worker) Stop() {
	if !w.isRunning {
		return
	}

	log.Println("Stopping worker...")
	close(w.shutdown)
	w.isRunning = false
}

// pumpDelayedJobs periodically promotes due retries back onto the main queue.
func (w *Worker) pumpDelayedJobs() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := w.queue.ProcessDelayedJobs(ctx); err != nil {
				log.Printf("Error processing delayed jobs: %v", err)
			}
			cancel()
		}
	}
}

func (w *Worker) processJobs(workerID int) {
	log.Printf("Worker %d starting", workerID)

	for {
		select {
		case <-w.shutdown:
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			job, err := w.queue.Dequeue(ctx, 5*time.Second)
			cancel()

			if err != nil {
				log.Printf("Worker %d: Error dequeuing job: %v", workerID, err)
				time.Sleep(time.Second)
				continue
			}

			if job == nil {
				time.Sleep(100 * time.Millisecond)
				continue
			}

			log.Printf("Worker %d processing job %s of type %s", workerID, job.ID, job.Type)

			jobErr := w.processJob(job)
			if jobErr != nil {
				log.Printf("Worker %d: Error processing job %s: %v", workerID, job.ID, jobErr)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if failErr := w.queue.FailJob(ctx, job, jobErr); failErr != nil {
					log.Printf("Worker %d: Error marking job %s as failed: %v", workerID, job.ID, failErr)
				}
				cancel()

				time.Sleep(time.Second)
				continue
			}

			ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
			if completeErr := w.queue.CompleteJob(ctx, job); completeErr != nil {
				log.Printf("Worker %d: Error marking job %s as complete: %v", workerID, job.ID, completeErr)
			}
			cancel()
		}
	}
}

func (w *Worker) processJob(job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeOrderConfirmation:
		return w.processOrderEmail(job, true)
	case queue.JobTypeOrderStatusUpdate:
		return w.processOrderEmail(job, false)
	case queue.JobTypeQuoteReady:
		return w.processQuoteEmail(job)
	case queue.JobTypeNewsletterWelcome:
		return w.processWelcomeEmail(job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// processOrderEmail re-reads the order so the email always reflects the
// current state, not the state at enqueue time.
func (w *Worker) processOrderEmail(job *queue.Job, confirmation bool) error {
	orderID, ok := job.Data["order_id"].(string)
	if !ok || orderID == "" {
		return fmt.Errorf("invalid order_id in job data")
	}

	order, err := w.db.GetOrderByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to get order %s: %v", orderID, err)
	}

	if confirmation {
		return w.emailService.SendOrderConfirmationEmail(order.Email, order)
	}
	return w.emailService.SendOrderStatusEmail(order.Email, order)
}

func (w *Worker) processQuoteEmail(job *queue.Job) error {
	requestID, ok := job.Data["request_id"].(string)
	if !ok || requestID == "" {
		return fmt.Errorf("invalid request_id in job data")
	}

	request, err := w.db.GetCustomRequestByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to get custom request %s: %v", requestID, err)
	}

	return w.emailService.SendQuoteEmail(request.Email, request)
}

func (w *Worker) processWelcomeEmail(job *queue.Job) error {
	to, ok := job.Data["email"].(string)
	if !ok || to == "" {
		return fmt.Errorf("invalid email in job data")
	}

	return w.emailService.SendWelcomeEmail(to)
}
