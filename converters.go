package searchai

import (
	"github.com/nitinanarwal/Search-AI/internal/domain/search/query"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/state"
)

func fromResult(r *result.Result) Result {
	out := Result{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		Location:    r.Location(),
		Causes:      r.Causes(),
		Verified:    r.Verified(),
		RatingLabel: r.RatingLabel(),
		ScoreLabel:  r.ScoreLabel(),
	}
	if v, ok := r.Rating(); ok {
		out.Rating = &v
	}
	if v, ok := r.Score(); ok {
		out.Score = &v
	}
	if e, ok := r.Explanation(); ok {
		out.Explanation = e
	}
	return out
}

func fromResults(results []result.Result) []Result {
	out := make([]Result, len(results))
	for i := range results {
		out[i] = fromResult(&results[i])
	}
	return out
}

func fromState(s state.State) State {
	out := State{
		Status:  Status(s.Status()),
		Seq:     s.Seq(),
		Message: s.Message(),
	}
	if s.Status() == state.StatusSuccess {
		out.Results = fromResults(s.Results())
	}
	return out
}

func fromModel(m query.Model) QuerySnapshot {
	return QuerySnapshot{
		Text:        m.Text(),
		Zip:         m.Zip(),
		RadiusMiles: m.Radius(),
		Causes:      m.Causes().Values(),
		Sort:        SortOrder(m.Sort()),
		Page:        m.Page(),
		PageSize:    m.PageSize(),
	}
}
