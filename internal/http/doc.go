// Package http provides the HTTP transport used to talk to the catalog API.
//
// # Client
//
// Client resolves catalog-relative references against a base URL and
// speaks JSON:
//
//	client := http.NewClient(settings.APIBaseURL, http.WithTimeout(30*time.Second))
//
//	var page model.Page
//	err := client.GetJSON(ctx, "/api/album", url.Values{"id": {id}}, &page)
//
// # Errors
//
// Any non-2xx response becomes a *StatusError whose message is the
// response body, so server messages such as "forbidden" reach the user
// verbatim:
//
//	if http.IsStatus(err, 403) {
//	    // not the track's artist
//	}
//
// # Uploads
//
// PostMultipart streams local files into a multipart form:
//
//	err := client.PostMultipart(ctx, "/api/upload-track",
//	    map[string]string{"title": "Night"},
//	    []http.FormFile{{Field: "audio", Path: "/music/night.mp3"}},
//	    &track)
package http
