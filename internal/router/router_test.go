package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yeahmusic/internal/model"
)

// recorder logs every render call it receives.
type recorder struct {
	calls    []string
	sections []Section
	page     ContentPage
	edit     EditLyrics
}

func (r *recorder) BeginRender(s Section) {
	r.calls = append(r.calls, "begin")
	r.sections = append(r.sections, s)
}

func (r *recorder) RenderHome() string        { return r.log("home") }
func (r *recorder) RenderSearch() string      { return r.log("search") }
func (r *recorder) RenderLibrary() string     { return r.log("library") }
func (r *recorder) RenderTools() string       { return r.log("tools") }
func (r *recorder) RenderEditProfile() string { return r.log("edit-profile") }
func (r *recorder) RenderCreateAlbum() string { return r.log("create-album") }
func (r *recorder) RenderUploadTrack() string { return r.log("upload-track") }

func (r *recorder) RenderContentPage(p ContentPage) string {
	r.page = p
	return r.log("content")
}

func (r *recorder) RenderEditLyrics(e EditLyrics) string {
	r.edit = e
	return r.log("edit-lyrics")
}

func (r *recorder) log(name string) string {
	r.calls = append(r.calls, name)
	return name
}

type unknownState struct{}

func (unknownState) state() {}

func TestDispatch(t *testing.T) {
	page := ContentPage{Kind: model.PagePlaylist, ID: "p1"}
	edit := EditLyrics{TrackID: "t1", RawLyrics: "la", Title: "Song", Artist: "Mira"}

	tests := []struct {
		state   State
		want    string
		section Section
	}{
		{Home{}, "home", SectionHome},
		{Search{}, "search", SectionSearch},
		{Library{}, "library", SectionLibrary},
		{Tools{}, "tools", SectionTools},
		{EditProfile{}, "edit-profile", SectionLibrary},
		{CreateAlbum{}, "create-album", SectionLibrary},
		{UploadTrack{}, "upload-track", SectionLibrary},
		{page, "content", SectionLibrary},
		{edit, "edit-lyrics", SectionLibrary},
		{nil, "home", SectionHome},
		{unknownState{}, "home", SectionHome},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			rec := &recorder{}
			got := Dispatch[string](rec, tt.state)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"begin", tt.want}, rec.calls, "overlays close before the view renders")
			assert.Equal(t, []Section{tt.section}, rec.sections)
		})
	}

	rec := &recorder{}
	Dispatch[string](rec, page)
	assert.Equal(t, page, rec.page)
	Dispatch[string](rec, edit)
	assert.Equal(t, edit, rec.edit)
}

func TestRouter_EmptyIsHome(t *testing.T) {
	r := New()
	assert.Equal(t, Home{}, r.Current())
	assert.False(t, r.CanBack())
	assert.False(t, r.CanForward())

	s, ok := r.Back()
	assert.False(t, ok)
	assert.Equal(t, Home{}, s)
}

func TestRouter_BackAndForward(t *testing.T) {
	r := New()
	r.Navigate(Home{})
	r.Navigate(Search{})
	r.Navigate(Library{})

	s, ok := r.Back()
	require.True(t, ok)
	assert.Equal(t, Search{}, s)

	s, ok = r.Back()
	require.True(t, ok)
	assert.Equal(t, Home{}, s)

	_, ok = r.Back()
	assert.False(t, ok)
	assert.Equal(t, Home{}, r.Current())
	assert.Equal(t, 3, r.Len(), "back never pushes")

	s, ok = r.Forward()
	require.True(t, ok)
	assert.Equal(t, Search{}, s)
	assert.True(t, r.CanForward())
}

func TestRouter_NavigateDropsForwardHistory(t *testing.T) {
	r := New()
	r.Navigate(Home{})
	r.Navigate(Search{})
	r.Navigate(Library{})
	r.Back()
	r.Back()

	r.Navigate(Tools{})
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.CanForward())
	assert.Equal(t, Tools{}, r.Current())

	s, _ := r.Back()
	assert.Equal(t, Home{}, s)
}

func TestRouter_NavigateNil(t *testing.T) {
	r := New()
	r.Navigate(nil)
	assert.Equal(t, Home{}, r.Current())
}

func TestRouter_Replace(t *testing.T) {
	r := New()
	r.Replace(Search{})
	assert.Equal(t, 1, r.Len())

	r.Navigate(EditLyrics{TrackID: "t1"})
	r.Replace(EditLyrics{TrackID: "t1", RawLyrics: "fetched"})
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, EditLyrics{TrackID: "t1", RawLyrics: "fetched"}, r.Current())

	s, _ := r.Back()
	assert.Equal(t, Search{}, s)
}

func TestRouter_Generation(t *testing.T) {
	r := New()
	gen := r.Navigate(ContentPage{Kind: model.PageAlbum, ID: "a1"})
	assert.True(t, r.IsCurrent(gen))

	r.Navigate(Library{})
	assert.False(t, r.IsCurrent(gen), "response for the album page is stale")

	r.Back()
	assert.False(t, r.IsCurrent(gen), "returning to the page starts a new transition")
	assert.True(t, r.IsCurrent(r.Generation()))

	before := r.Generation()
	r.Back()
	assert.Equal(t, before, r.Generation(), "a refused back is not a transition")
}

func TestSectionRoot(t *testing.T) {
	for _, s := range Sections {
		assert.Equal(t, s, SectionOf(s.Root()), s.String())
	}
}

func TestNeedsFetch(t *testing.T) {
	assert.True(t, NeedsFetch(ContentPage{}))
	assert.True(t, NeedsFetch(EditLyrics{}))
	assert.False(t, NeedsFetch(Library{}))
	assert.False(t, NeedsFetch(nil))
}
