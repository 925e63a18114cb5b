package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/probelab/lanscope/internal/addrspace"
	"github.com/probelab/lanscope/internal/infrastructure/config"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/shared/types"
)

// unknownErrorMessage is the fallback when a transport error carries no text.
const unknownErrorMessage = "Unknown error occurred"

var (
	// ErrProbeInFlight rejects a submission while another probe is pending.
	ErrProbeInFlight = errors.New("a probe is already in flight")
	// ErrEmptyURL rejects a submission without a target.
	ErrEmptyURL = errors.New("url must not be empty")
)

// Recorder receives probe metrics. Satisfied by monitoring.Metrics; nil
// disables recording.
type Recorder interface {
	RecordProbe(phase, zone string, duration time.Duration)
	SetProbeInFlight(pending bool)
	IncProbeRejected()
	IncStaleResult()
}

// Watcher observes lifecycle transitions. Callbacks run outside the
// lifecycle lock on the completing goroutine and must not block for long.
type Watcher func(types.RequestOutcome)

// Lifecycle owns the single probe slot. All mutation happens under one
// mutex; the outcome value is replaced wholesale on every transition.
type Lifecycle struct {
	client  *Client
	log     *logging.Logger
	rec     Recorder
	timeNow func() time.Time

	rejectWhilePending bool
	vocabulary         string
	maxBodyBytes       int64

	mu       sync.Mutex
	seq      uint64
	pending  bool
	outcome  types.RequestOutcome
	watchers []Watcher
}

// NewLifecycle creates an idle lifecycle around the given client.
func NewLifecycle(client *Client, cfg config.ProbeConfig, log *logging.Logger, rec Recorder) *Lifecycle {
	if log == nil {
		log = logging.NewNop()
	}
	return &Lifecycle{
		client:             client,
		log:                log,
		rec:                rec,
		timeNow:            time.Now,
		rejectWhilePending: cfg.RejectWhilePending,
		vocabulary:         cfg.SpaceVocabulary,
		maxBodyBytes:       cfg.MaxBodyBytes,
		outcome:            types.IdleOutcome(0),
	}
}

// Vocabulary returns the active address-space vocabulary name.
func (l *Lifecycle) Vocabulary() string {
	return l.vocabulary
}

// Outcome returns the current request outcome.
func (l *Lifecycle) Outcome() types.RequestOutcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outcome
}

// Watch registers a transition observer.
func (l *Lifecycle) Watch(w Watcher) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchers = append(l.watchers, w)
}

// Submit starts one probe and returns its sequence number. Fire-and-forget:
// the result is observed via Outcome or a Watcher. While a probe is
// pending, new submissions are rejected with ErrProbeInFlight; with the
// guard disabled they supersede the pending probe instead, and its eventual
// result is discarded.
func (l *Lifecycle) Submit(ctx context.Context, rawURL string, space types.AddressSpace) (uint64, error) {
	if strings.TrimSpace(rawURL) == "" {
		return 0, ErrEmptyURL
	}
	if space != "" && space != types.SpaceNone && !types.ValidSpace(space, l.vocabulary) {
		return 0, fmt.Errorf("address space %q is not in the %s vocabulary", space, l.vocabulary)
	}

	l.mu.Lock()
	if l.pending && l.rejectWhilePending {
		l.mu.Unlock()
		if l.rec != nil {
			l.rec.IncProbeRejected()
		}
		return 0, ErrProbeInFlight
	}

	l.seq++
	seq := l.seq
	l.pending = true
	l.outcome = types.RequestOutcome{
		Phase:        types.PhasePending,
		Sequence:     seq,
		URL:          rawURL,
		AddressSpace: space,
	}
	snapshot := l.outcome
	l.mu.Unlock()

	if l.rec != nil {
		l.rec.SetProbeInFlight(true)
	}
	l.notify(snapshot)

	// The fetch must outlive the submitting HTTP request; the client's own
	// timeout bounds it.
	go l.run(context.WithoutCancel(ctx), seq, rawURL, space)

	return seq, nil
}

// Clear resets the lifecycle to idle. From idle it is a no-op. Clearing
// while pending does not cancel the underlying call; it runs to completion
// and its result is discarded by the sequence check.
func (l *Lifecycle) Clear() {
	l.mu.Lock()
	if l.outcome.Phase == types.PhaseIdle {
		l.mu.Unlock()
		return
	}
	l.seq++
	l.pending = false
	l.outcome = types.IdleOutcome(l.seq)
	snapshot := l.outcome
	l.mu.Unlock()

	if l.rec != nil {
		l.rec.SetProbeInFlight(false)
	}
	l.notify(snapshot)
}

// run executes one probe and installs its terminal outcome unless the
// submission has been superseded.
func (l *Lifecycle) run(ctx context.Context, seq uint64, rawURL string, space types.AddressSpace) {
	start := l.timeNow()
	outcome := l.execute(ctx, rawURL, space)
	duration := l.timeNow().Sub(start)

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		if l.rec != nil {
			l.rec.IncStaleResult()
		}
		l.log.Debug("discarding superseded probe result",
			zap.Uint64("sequence", seq),
			zap.String("url", rawURL),
		)
		return
	}
	l.pending = false
	outcome.Sequence = seq
	outcome.DurationMS = float64(duration.Microseconds()) / 1000.0
	completed := l.timeNow()
	outcome.CompletedAt = &completed
	l.outcome = outcome
	l.mu.Unlock()

	if l.rec != nil {
		l.rec.SetProbeInFlight(false)
		l.rec.RecordProbe(string(outcome.Phase), zoneLabel(outcome.ResolvedZone), duration)
	}
	l.notify(outcome)
}

// execute performs the HTTP GET and converts every failure into a terminal
// outcome. Nothing escapes this boundary as an error.
func (l *Lifecycle) execute(ctx context.Context, rawURL string, space types.AddressSpace) types.RequestOutcome {
	outcome := types.RequestOutcome{
		URL:          rawURL,
		AddressSpace: space,
	}

	req, err := l.client.Request(ctx)
	if err != nil {
		outcome.Phase = types.PhaseFailed
		outcome.Message = errorMessage(err)
		l.log.Debug("probe rejected before dispatch", zap.String("url", rawURL), zap.Error(err))
		return outcome
	}

	if space != "" && space != types.SpaceNone {
		req.SetHeader(HintHeader, string(space))
	}

	resp, err := l.client.ExecuteWithBreaker(func() (*resty.Response, error) {
		return req.Get(rawURL)
	})
	if err != nil {
		outcome.Phase = types.PhaseFailed
		outcome.Message = errorMessage(err)
		l.log.Debug("probe transport failure", zap.String("url", rawURL), zap.Error(err))
		return outcome
	}

	// A response arrived; classify the target's zone for diagnostics.
	outcome.ResolvedZone = addrspace.ZoneOfURL(ctx, rawURL)
	outcome.HintNote = addrspace.HintNote(space, outcome.ResolvedZone)
	outcome.StatusCode = resp.StatusCode()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		outcome.Phase = types.PhaseFailed
		outcome.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), statusText(resp))
		return outcome
	}

	body := resp.Body()
	if l.maxBodyBytes > 0 && int64(len(body)) > l.maxBodyBytes {
		body = body[:l.maxBodyBytes]
	}

	decoded := Decode(body, resp.Header().Get("Content-Type"))
	outcome.Phase = types.PhaseSucceeded
	outcome.Body = decoded.Body
	outcome.Headers = FilterHeaders(resp.Header())
	outcome.ContentType = decoded.ContentType
	outcome.Title = decoded.Title
	outcome.Preview = decoded.Preview
	return outcome
}

func (l *Lifecycle) notify(outcome types.RequestOutcome) {
	l.mu.Lock()
	watchers := make([]Watcher, len(l.watchers))
	copy(watchers, l.watchers)
	l.mu.Unlock()

	for _, w := range watchers {
		w(outcome)
	}
}

// statusText returns the reason phrase without the leading status code.
// HTTP/2 responses carry no phrase; the canonical text fills in.
func statusText(resp *resty.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(resp.StatusCode())))
	if text == "" {
		text = http.StatusText(resp.StatusCode())
	}
	return text
}

// errorMessage extracts a human-readable message from a transport error.
func errorMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return unknownErrorMessage
	}
	return err.Error()
}

func zoneLabel(zone types.AddressSpace) string {
	if zone == "" {
		return string(types.SpaceUnknown)
	}
	return string(zone)
}
