package router

// Renderer draws views. T is whatever a render produces, for example a
// command to run after the view is shown.
type Renderer[T any] interface {
	// BeginRender runs before every view render. It closes overlays and
	// highlights the view's section.
	BeginRender(section Section)

	RenderHome() T
	RenderSearch() T
	RenderLibrary() T
	RenderTools() T
	RenderEditProfile() T
	RenderCreateAlbum() T
	RenderUploadTrack() T
	RenderContentPage(p ContentPage) T
	RenderEditLyrics(e EditLyrics) T
}

// Dispatch renders s with r. Nil and unknown states render Home.
func Dispatch[T any](r Renderer[T], s State) T {
	r.BeginRender(SectionOf(s))

	switch s := s.(type) {
	case Search:
		return r.RenderSearch()
	case Library:
		return r.RenderLibrary()
	case Tools:
		return r.RenderTools()
	case EditProfile:
		return r.RenderEditProfile()
	case CreateAlbum:
		return r.RenderCreateAlbum()
	case UploadTrack:
		return r.RenderUploadTrack()
	case ContentPage:
		return r.RenderContentPage(s)
	case EditLyrics:
		return r.RenderEditLyrics(s)
	default:
		return r.RenderHome()
	}
}
