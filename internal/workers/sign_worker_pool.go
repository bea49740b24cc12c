// Package workers runs the asynchronous half of the signing flow. Transition
// commands enqueue sign tasks and answer immediately; a pool of worker
// goroutines dequeues each task, drives the vendor's request/poll/verify
// flow, and hands the terminal outcome to the finalization command, which
// decides under a row lock whether the order may still transition.
package workers

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/token"
)

const (
	signTitle       = "JH솔루션 전자서명 요청"
	onboardMessage  = "화주의 화물을 상차했음을 확인합니다."
	outboardMessage = "기사님이 하차를 완료했음을 확인합니다."

	// testPrefix marks requests from non-production deployments so real
	// signers are never confused by staging traffic.
	testPrefix = "[테스트] "
)

// Finalizer applies a terminal signing outcome to the attempt and, when
// still valid, to the order. Satisfied by
// commands.FinalizeSigningCommandHandler.
type Finalizer interface {
	Handle(ctx context.Context, command commands.FinalizeSigningCommand) error
}

// OrderGetter loads one order aggregate for reading.
type OrderGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// DocumentGetter loads one document aggregate for reading.
type DocumentGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*document.Document, error)
}

// SignWorkerPool consumes the sign-task queue with a fixed number of
// goroutines. Each task blocks its worker for up to the vendor's signing
// window, so the pool size bounds how many signatures can be in flight.
type SignWorkerPool struct {
	queue      ports.SignTaskQueue
	certClient ports.CertClient
	finalizer  Finalizer
	orders     OrderGetter
	documents  DocumentGetter

	passSigner    *token.Signer
	publicBaseURL string
	production    bool

	size   int
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewSignWorkerPool creates a pool of size workers. passSigner mints the
// short-lived token PASS uses to show the signer the original document;
// publicBaseURL is the externally reachable address the document link is
// built on.
func NewSignWorkerPool(
	queue ports.SignTaskQueue,
	certClient ports.CertClient,
	finalizer Finalizer,
	orders OrderGetter,
	documents DocumentGetter,
	passSigner *token.Signer,
	publicBaseURL string,
	production bool,
	size int,
	logger *slog.Logger,
) (*SignWorkerPool, error) {
	if size < 1 {
		return nil, errs.NewValueIsOutOfRangeError("size", size, 1, nil)
	}
	if passSigner == nil {
		return nil, errs.NewValueIsRequiredError("passSigner")
	}
	if publicBaseURL == "" {
		return nil, errs.NewValueIsRequiredError("publicBaseURL")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &SignWorkerPool{
		queue:         queue,
		certClient:    certClient,
		finalizer:     finalizer,
		orders:        orders,
		documents:     documents,
		passSigner:    passSigner,
		publicBaseURL: publicBaseURL,
		production:    production,
		size:          size,
		logger:        logger.With("component", "sign_worker_pool"),
	}, nil
}

// Start launches the workers. They run until ctx is canceled; Wait blocks
// until all of them have drained.
func (p *SignWorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(workerID int) {
			defer p.wg.Done()
			p.run(ctx, workerID)
		}(i)
	}
	p.logger.InfoContext(ctx, "Sign worker pool started", "workers", p.size)
}

// Wait blocks until all workers have exited after ctx cancellation.
func (p *SignWorkerPool) Wait() {
	p.wg.Wait()
}

func (p *SignWorkerPool) run(ctx context.Context, workerID int) {
	logger := p.logger.With("worker", workerID)

	for {
		task, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.InfoContext(ctx, "Sign worker stopped")
				return
			}
			logger.ErrorContext(ctx, "Dequeue failed", "error", err)
			continue
		}

		if err := p.Process(ctx, task); err != nil {
			logger.ErrorContext(ctx, "Sign task failed",
				"attemptID", task.AttemptID, "orderID", task.OrderID, "error", err)
		}
	}
}

// Process handles one task end to end: build the vendor request, run the
// signing flow, finalize the attempt. Exposed for tests.
func (p *SignWorkerPool) Process(ctx context.Context, task ports.SignTask) error {
	req, err := p.buildRequest(ctx, task)
	if err != nil {
		return err
	}

	outcome := p.certClient.TrySign(ctx, req)

	command, err := commands.NewFinalizeSigningCommand(task, outcome)
	if err != nil {
		return err
	}
	return p.finalizer.Handle(ctx, command)
}

func (p *SignWorkerPool) buildRequest(ctx context.Context, task ports.SignTask) (ports.SignRequest, error) {
	target, err := p.orders.Get(ctx, task.OrderID)
	if err != nil {
		return ports.SignRequest{}, err
	}
	doc, err := p.documents.Get(ctx, target.DocumentID())
	if err != nil {
		return ports.SignRequest{}, err
	}

	signToken, err := documentToken(doc)
	if err != nil {
		return ports.SignRequest{}, err
	}

	title := signTitle
	var message string
	switch task.Purpose {
	case order.ConfirmOnboard:
		message = onboardMessage
	case order.ConfirmOutboard:
		message = outboardMessage
	default:
		return ports.SignRequest{}, errs.NewValueIsInvalidError("purpose")
	}
	if !p.production {
		title = testPrefix + title
		message = testPrefix + message
	}

	req := ports.SignRequest{
		Vendor:  task.Vendor,
		Signer:  task.Signer,
		Token:   signToken,
		Title:   title,
		Message: message,
	}

	if task.Vendor == cert.VendorPass {
		originalURL, urlErr := p.documentURL(task.OrderID)
		if urlErr != nil {
			return ports.SignRequest{}, urlErr
		}
		req.OriginalURL = originalURL
	}

	return req, nil
}

// documentToken is the payload the signer signs: the url-safe base64 of
// the document's SHA-256 digest.
func documentToken(doc *document.Document) (string, error) {
	digest, err := hex.DecodeString(doc.SHA256())
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("sha256", err)
	}
	return base64.URLEncoding.EncodeToString(digest), nil
}

// documentURL builds the short-lived link PASS presents as the original
// document.
func (p *SignWorkerPool) documentURL(orderID kernel.UUID) (string, error) {
	accessToken, err := p.passSigner.Sign(orderID.String())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/orders/%s/document?token=%s", p.publicBaseURL, orderID, accessToken), nil
}
