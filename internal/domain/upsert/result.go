// Package upsert holds the bookkeeping shared by every batch write.
package upsert

// Result counts the outcome of one batch. Failed rows never abort the batch.
type Result struct {
	Attempted int
	Written   int
	Failed    int
}

func (r Result) Add(other Result) Result {
	return Result{
		Attempted: r.Attempted + other.Attempted,
		Written:   r.Written + other.Written,
		Failed:    r.Failed + other.Failed,
	}
}
