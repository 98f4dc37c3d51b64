package batch

import (
	"Geospace/internal/calc/calcerr"
	gravity "Geospace/internal/calc/gravity"
)

type GravityBatchInput struct {
	Items []gravity.FormInput `json:"items"`
}

type GravityBatchResult struct {
	Results []gravity.Result `json:"results"`
}

func CalculateGravity(in GravityBatchInput) (GravityBatchResult, error) {
	if len(in.Items) == 0 {
		return GravityBatchResult{}, &calcerr.InsufficientDataError{What: "specific gravity batch", Need: 1}
	}
	results, err := gravity.CalculateAll(in.Items)
	if err != nil {
		return GravityBatchResult{}, err
	}
	return GravityBatchResult{Results: results}, nil
}
