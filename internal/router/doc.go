// Package router maps navigation states to view renders and owns the
// navigation history.
//
// A State is one of a fixed set of variants (Home, Search, Library, Tools,
// EditProfile, CreateAlbum, UploadTrack, ContentPage, EditLyrics).
// Navigate pushes a state and drops any forward history; Back and Forward
// move through existing entries without pushing. Dispatch calls exactly
// one Renderer method per state, falling back to Home for nil.
//
//	r := router.New()
//	gen := r.Navigate(router.ContentPage{Kind: model.PageAlbum, ID: id})
//	cmd := router.Dispatch[tea.Cmd](views, r.Current())
//	// later, when the fetch completes:
//	if !r.IsCurrent(gen) {
//	    // the user moved on; drop the response
//	}
package router
