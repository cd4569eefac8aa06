package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// IssueCreateRequest is the checkout completion payload. Items maps item ids
// to requested quantities; keys and values arrive client-controlled as strings
// or numbers and are parsed defensively by the issuance workflow.
type IssueCreateRequest struct {
	TeacherID   uint                       `json:"teacher_id" validate:"required"`
	Items       map[string]json.RawMessage `json:"items"`
	Signature   string                     `json:"signature"`
	PairingCode string                     `json:"pairing_code" validate:"omitempty,numeric"`
}

// IssueLineResponse is one issued line.
type IssueLineResponse struct {
	ItemID   uint   `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	Qty      int    `json:"qty"`
}

// IssueResponse is the API shape of a persisted issuance.
type IssueResponse struct {
	ID            uint                `json:"id"`
	TeacherID     uint                `json:"teacher_id"`
	TeacherName   string              `json:"teacher_name,omitempty"`
	UserID        uint                `json:"user_id"`
	SignaturePath string              `json:"signature_path"`
	CreatedAt     time.Time           `json:"created_at"`
	Lines         []IssueLineResponse `json:"lines"`
	SkippedItems  []string            `json:"skipped_items,omitempty"`
}

// IssueListResponse pages persisted issuances.
type IssueListResponse struct {
	Issues   []IssueResponse `json:"issues"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// NewIssueResponse maps a model to its API shape.
func NewIssueResponse(issue models.Issue, skipped []string) IssueResponse {
	lines := make([]IssueLineResponse, 0, len(issue.Lines))
	for _, line := range issue.Lines {
		lines = append(lines, IssueLineResponse{
			ItemID:   line.ItemID,
			ItemName: line.Item.Name,
			Qty:      line.Qty,
		})
	}

	return IssueResponse{
		ID:            issue.ID,
		TeacherID:     issue.TeacherID,
		TeacherName:   issue.Teacher.Name,
		UserID:        issue.UserID,
		SignaturePath: issue.SignaturePath,
		CreatedAt:     issue.CreatedAt,
		Lines:         lines,
		SkippedItems:  skipped,
	}
}

// NewIssueResponseSlice maps a slice of models.
func NewIssueResponseSlice(issues []models.Issue) []IssueResponse {
	responses := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		responses = append(responses, NewIssueResponse(issue, nil))
	}
	return responses
}
