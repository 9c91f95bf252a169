package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"photokeep/internal/services/llm"
)

// Tool names the model may invoke. Deletion is deliberately absent: the
// planner can only propose removals via enqueue_for_review, and a human
// approves them later.
const (
	toolListPhotos       = "list_photos"
	toolFindDuplicates   = "find_duplicates"
	toolListReviewQueue  = "list_review_queue"
	toolMoveToFolder     = "move_to_folder"
	toolEnqueueForReview = "enqueue_for_review"
)

func toolCatalog() []llm.Tool {
	return []llm.Tool{
		llm.NewTool(toolListPhotos,
			"List every photo in the library for the year being organized, with file sizes and creation dates.",
			map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			}),
		llm.NewTool(toolFindDuplicates,
			"Scan the year's photos for byte-identical duplicates. Each group names the first-seen original and the redundant copies.",
			map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			}),
		llm.NewTool(toolListReviewQueue,
			"List items already queued for human review this year, so the same file is not enqueued twice.",
			map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			}),
		llm.NewTool(toolMoveToFolder,
			"Move a photo into a folder under the library root, creating the folder if needed.",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filename": map[string]any{
						"type":        "string",
						"description": "Library-relative path of the photo to move.",
					},
					"folder": map[string]any{
						"type":        "string",
						"description": "Library-relative destination folder.",
					},
				},
				"required": []string{"filename", "folder"},
			}),
		llm.NewTool(toolEnqueueForReview,
			"Queue a photo for human deletion review with a reason. Nothing is deleted until a human approves it.",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filename": map[string]any{
						"type":        "string",
						"description": "Library-relative path of the photo to queue.",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Why this photo should be considered for deletion.",
					},
				},
				"required": []string{"filename", "reason"},
			}),
	}
}

type moveToFolderArgs struct {
	Filename string `json:"filename"`
	Folder   string `json:"folder"`
}

func (a moveToFolderArgs) validate() error {
	if strings.TrimSpace(a.Filename) == "" {
		return fmt.Errorf("%s: filename required", toolMoveToFolder)
	}
	if strings.TrimSpace(a.Folder) == "" {
		return fmt.Errorf("%s: folder required", toolMoveToFolder)
	}
	return nil
}

type enqueueForReviewArgs struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

func (a enqueueForReviewArgs) validate() error {
	if strings.TrimSpace(a.Filename) == "" {
		return fmt.Errorf("%s: filename required", toolEnqueueForReview)
	}
	if strings.TrimSpace(a.Reason) == "" {
		return fmt.Errorf("%s: reason required", toolEnqueueForReview)
	}
	return nil
}

func decodeToolArgs(raw string, target interface{ validate() error }) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = "{}"
	}
	if err := json.Unmarshal([]byte(trimmed), target); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return target.validate()
}

// toolResult renders a tool's outcome as the JSON string fed back to the
// model. Failures become {"error": ...} so the model can adjust instead of
// the whole run aborting.
func toolResult(payload any, err error) string {
	if err != nil {
		encoded, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
		if marshalErr != nil {
			return `{"error":"internal encoding failure"}`
		}
		return string(encoded)
	}
	encoded, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return `{"error":"internal encoding failure"}`
	}
	return string(encoded)
}
