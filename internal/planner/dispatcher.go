package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"photokeep/internal/dupes"
	"photokeep/internal/library"
	"photokeep/internal/logging"
	"photokeep/internal/organizer"
	"photokeep/internal/review"
	"photokeep/internal/services"
	"photokeep/internal/services/llm"
)

// ChatClient is the slice of the LLM client the dispatcher needs.
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message, tools []llm.Tool) (llm.ChatResult, error)
}

// Outcome summarizes one planning run over a year.
type Outcome struct {
	RunID     string
	Year      int
	Summary   string
	Rounds    int
	ToolCalls int
	Moved     int
	Enqueued  int
	Exhausted bool
}

// Dispatcher runs the tool-calling planning loop for one year at a time. The
// model proposes operations from a closed catalog; the dispatcher executes
// them against the library and feeds structured results back until the model
// answers with plain text or the round budget runs out.
type Dispatcher struct {
	client    ChatClient
	index     *library.Index
	detector  *dupes.Detector
	store     *review.Store
	actions   *organizer.Organizer
	maxRounds int
	logger    *slog.Logger
}

// NewDispatcher wires the planning loop over its collaborators.
func NewDispatcher(client ChatClient, index *library.Index, detector *dupes.Detector, store *review.Store, actions *organizer.Organizer, maxRounds int, logger *slog.Logger) *Dispatcher {
	if maxRounds <= 0 {
		maxRounds = 1
	}
	return &Dispatcher{
		client:    client,
		index:     index,
		detector:  detector,
		store:     store,
		actions:   actions,
		maxRounds: maxRounds,
		logger:    logging.NewComponentLogger(logger, "planner"),
	}
}

// Run drives the planning conversation for a single year.
func (d *Dispatcher) Run(ctx context.Context, year int) (Outcome, error) {
	outcome := Outcome{
		RunID: uuid.NewString(),
		Year:  year,
	}
	logger := d.logger.With(
		logging.String(logging.FieldRunID, outcome.RunID),
		logging.Int(logging.FieldYear, year))
	logger.Info("planning run started", logging.Int("max_rounds", d.maxRounds))
	started := time.Now()

	transcript := []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(userPrompt(year)),
	}
	tools := toolCatalog()

	for round := 1; round <= d.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		outcome.Rounds = round

		result, err := d.client.Chat(ctx, transcript, tools)
		if err != nil {
			return outcome, services.Wrap(services.ErrExternalService, "planner", "chat round", "planning service request failed", err)
		}

		if !result.HasToolCalls() {
			outcome.Summary = result.Content
			logger.Info("planning run finished",
				logging.Int("rounds", outcome.Rounds),
				logging.Int("tool_calls", outcome.ToolCalls),
				logging.Duration("elapsed", time.Since(started)))
			return outcome, nil
		}

		transcript = append(transcript, llm.Message{
			Role:      "assistant",
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})
		for _, call := range result.ToolCalls {
			outcome.ToolCalls++
			payload := d.execute(logger, year, call, &outcome)
			transcript = append(transcript, llm.ToolResultMessage(call.ID, payload))
		}
	}

	outcome.Exhausted = true
	outcome.Summary = fmt.Sprintf("stopped after %d rounds without a final summary", d.maxRounds)
	logger.Warn("planning run exhausted round budget",
		logging.Int("rounds", outcome.Rounds),
		logging.Int("tool_calls", outcome.ToolCalls))
	return outcome, nil
}

// execute dispatches one tool call. Failures are reported to the model as
// {"error": ...} payloads; only the transport layer can abort the run.
func (d *Dispatcher) execute(logger *slog.Logger, year int, call llm.ToolCall, outcome *Outcome) string {
	logger.Debug("executing tool call",
		logging.String("tool", call.Function.Name),
		logging.String("arguments", call.Function.Arguments))

	switch call.Function.Name {
	case toolListPhotos:
		photos := d.index.ListPhotos(year)
		if photos == nil {
			photos = []library.PhotoFile{}
		}
		return toolResult(map[string]any{"year": year, "photos": photos}, nil)

	case toolFindDuplicates:
		report := d.detector.FindDuplicates(year)
		return toolResult(report, nil)

	case toolListReviewQueue:
		queue, err := d.store.Load(year)
		if err != nil {
			return toolResult(nil, err)
		}
		items := queue.Items
		if items == nil {
			items = []review.Item{}
		}
		return toolResult(map[string]any{"year": year, "items": items}, nil)

	case toolMoveToFolder:
		var args moveToFolderArgs
		if err := decodeToolArgs(call.Function.Arguments, &args); err != nil {
			return toolResult(nil, err)
		}
		target, err := d.actions.MoveToFolder(args.Filename, args.Folder)
		if err != nil {
			return toolResult(nil, err)
		}
		outcome.Moved++
		return toolResult(map[string]string{"moved": args.Filename, "to": target}, nil)

	case toolEnqueueForReview:
		var args enqueueForReviewArgs
		if err := decodeToolArgs(call.Function.Arguments, &args); err != nil {
			return toolResult(nil, err)
		}
		item, err := d.store.Enqueue(year, args.Filename, args.Reason)
		if err != nil {
			return toolResult(nil, err)
		}
		outcome.Enqueued++
		return toolResult(map[string]any{"queued": item.Filename, "id": item.ID}, nil)

	default:
		return toolResult(nil, fmt.Errorf("unknown tool %q", call.Function.Name))
	}
}

// IsAborted reports whether a run error came from the planning service
// rather than the library.
func IsAborted(err error) bool {
	return errors.Is(err, services.ErrExternalService)
}
