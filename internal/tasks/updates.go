package tasks

import (
	"fmt"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/shared"
)

// ProgressUpdate represents a progress event during a generation cycle or batch.
type ProgressUpdate struct {
	Phase   Phase         // Operation phase
	Step    int           // Current step number within phase
	Total   int           // Total steps in this phase, 0 when unknown
	Message string        // Human-readable message for display
	Text    string        // Accumulated streaming text (Streaming only)
	Brief   *models.Brief // Final brief (Complete only)
	Err     error         // Failure (Failed only)
}

// Operation phase enumeration
type Phase int

const (
	Submit Phase = iota
	Streaming
	Complete
	Failed
	BatchItem
	BatchItemDone
	BatchItemFailed
)

func (p Phase) String() string {
	switch p {
	case Submit:
		return "submit"
	case Streaming:
		return "streaming"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	case BatchItem:
		return "batch_item"
	case BatchItemDone:
		return "batch_item_done"
	case BatchItemFailed:
		return "batch_item_failed"
	default:
		return ""
	}
}

func submitUpdate(opts RunOpts) ProgressUpdate {
	mode := "Generating brief..."
	if opts.Stream {
		mode = "Streaming brief..."
	}
	return ProgressUpdate{
		Phase:   Submit,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("%s (%s)", mode, shared.Truncate(opts.Idea, 40)),
	}
}

func streamingUpdate(chunks int, text string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Streaming,
		Step:    chunks,
		Message: fmt.Sprintf("Received %d chunks", chunks),
		Text:    text,
	}
}

func completeUpdate(brief *models.Brief) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Brief ready (%d sections)", brief.Len()),
		Brief:   brief,
	}
}

func failedUpdate(err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Failed,
		Message: fmt.Sprintf("Generation failed: %v", err),
		Err:     err,
	}
}

func batchItemUpdate(step, total int, idea string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Generating: %s...", step, total, shared.Truncate(idea, 40)),
	}
}

func batchItemDoneUpdate(step, total int, idea, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchItemDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, shared.Truncate(idea, 40), path),
	}
}

func batchItemFailedUpdate(step, total int, idea string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchItemFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, shared.Truncate(idea, 40), err),
		Err:     err,
	}
}
