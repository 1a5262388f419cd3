// Package searchai is a Go client for a remote nonprofit search API.
//
// The client owns the user's search intent (free text, ZIP and radius,
// cause filters, sort order and page), turns it into POST /api/search
// requests and tracks each request's lifecycle. Only the most recently
// submitted request can change the visible state; responses that arrive
// after a newer submit are dropped.
//
//	client, _ := searchai.New(searchai.WithBaseURL("http://localhost:5000"))
//
//	q := client.Query()
//	q.SetText("food pantry")
//	q.SetZip("94110")
//	q.ToggleCause(searchai.CauseHousing)
//
//	st, _, err := client.Submit(ctx).Wait(ctx)
//	for _, r := range st.Results {
//	    fmt.Println(r.Name, r.RatingLabel, r.Location)
//	}
//
// Rendering layers that need every transition can use Subscribe instead of Wait.
package searchai
