package controllers

import "github.com/datallboy/gofetch/internal/domain"

// CreateBatchRequest is the optional body of POST /api/batches.
type CreateBatchRequest struct {
	Targets []string `json:"targets"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchResponse wraps a report with the string form of the elapsed time,
// which is easier to read than nanoseconds.
type BatchResponse struct {
	*domain.BatchReport
	ElapsedText string `json:"elapsed_text"`
}

func newBatchResponse(r *domain.BatchReport) BatchResponse {
	return BatchResponse{BatchReport: r, ElapsedText: r.Elapsed.String()}
}
