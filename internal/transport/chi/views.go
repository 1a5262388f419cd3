package chi

import (
	searchai "github.com/nitinanarwal/Search-AI"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeUpstream         = "upstream_error"
	codeTimeout          = "timeout"
	codeInternal         = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type resultView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Causes      []string `json:"causes"`
	Rating      *float64 `json:"rating"`
	RatingLabel string   `json:"rating_label"`
	Verified    bool     `json:"verified"`
	Score       *float64 `json:"score"`
	ScoreLabel  string   `json:"score_label,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

type stateView struct {
	Status  string       `json:"status"`
	Seq     uint64       `json:"seq"`
	Results []resultView `json:"results"`
	Message string       `json:"message,omitempty"`
}

type businessListView struct {
	Results []resultView `json:"results"`
	Count   int          `json:"count"`
}

type submitView struct {
	Seq        uint64    `json:"seq"`
	Superseded bool      `json:"superseded,omitempty"`
	State      stateView `json:"state"`
}

type queryView struct {
	Text        string   `json:"query"`
	Zip         string   `json:"zip"`
	RadiusMiles float64  `json:"radius_miles"`
	Causes      []string `json:"causes"`
	Sort        string   `json:"sort"`
	Page        int      `json:"page"`
	PageSize    int      `json:"page_size"`
}

type vocabularyView struct {
	Causes []string `json:"causes"`
	Sorts  []string `json:"sorts"`
}

type healthView struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func resultToView(r *searchai.Result) resultView {
	causes := r.Causes
	if causes == nil {
		causes = []string{}
	}
	return resultView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Causes:      causes,
		Rating:      r.Rating,
		RatingLabel: r.RatingLabel,
		Verified:    r.Verified,
		Score:       r.Score,
		ScoreLabel:  r.ScoreLabel,
		Explanation: r.Explanation,
	}
}

func stateToView(s searchai.State) stateView {
	v := stateView{
		Status:  string(s.Status),
		Seq:     s.Seq,
		Message: s.Message,
	}
	if s.Status == searchai.StatusSuccess {
		v.Results = resultsToView(s.Results)
	}
	return v
}

func resultsToView(results []searchai.Result) []resultView {
	out := make([]resultView, len(results))
	for i := range results {
		out[i] = resultToView(&results[i])
	}
	return out
}

func queryToView(q searchai.QuerySnapshot) queryView {
	causes := q.Causes
	if causes == nil {
		causes = []string{}
	}
	return queryView{
		Text: q.Text,
		Zip:  q.Zip,
		// the radius that will be sent; NaN and Inf are not encodable
		RadiusMiles: request.CoerceRadius(q.RadiusMiles),
		Causes:      causes,
		Sort:        string(q.Sort),
		Page:        q.Page,
		PageSize:    q.PageSize,
	}
}
