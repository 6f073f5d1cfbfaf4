package usecase

import (
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/service/crisis"
	"github.com/freundlier/intake/pkg/service/notify"
	"github.com/freundlier/intake/pkg/service/rag"
	"github.com/m-mizutani/gollem"
)

// DefaultAttemptTimeout bounds each triage provider attempt so a hanging
// provider fails over instead of blocking the request indefinitely
const DefaultAttemptTimeout = 60 * time.Second

// TriageProvider is one entry of the failover chain. Providers are tried
// in slice order, one attempt each.
type TriageProvider struct {
	Name   string
	Client gollem.LLMClient
}

type UseCases struct {
	repo            interfaces.Repository
	chatLLM         gollem.LLMClient
	detector        *crisis.Detector
	retriever       *rag.Retriever
	notifier        notify.Service
	triageProviders []TriageProvider
	attemptTimeout  time.Duration
	now             func() time.Time
}

type Option func(*UseCases)

// WithDetector sets the crisis detector
func WithDetector(d *crisis.Detector) Option {
	return func(uc *UseCases) {
		uc.detector = d
	}
}

// WithRetriever sets the knowledge retriever
func WithRetriever(r *rag.Retriever) Option {
	return func(uc *UseCases) {
		uc.retriever = r
	}
}

// WithNotifier sets the crisis notification service
func WithNotifier(n notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithTriageProviders sets the ordered provider failover chain
func WithTriageProviders(providers ...TriageProvider) Option {
	return func(uc *UseCases) {
		uc.triageProviders = providers
	}
}

// WithAttemptTimeout sets the per-provider timeout for triage attempts
func WithAttemptTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.attemptTimeout = d
	}
}

// WithClock overrides the time source (for testing)
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, chatLLM gollem.LLMClient, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:           repo,
		chatLLM:        chatLLM,
		notifier:       notify.Discard{},
		attemptTimeout: DefaultAttemptTimeout,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
