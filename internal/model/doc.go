// Package model defines the catalog data structures shared by the player,
// the router and the catalog client.
//
// # Tracks
//
// Track is the unit of playback. Its Lyrics field is raw text that may
// carry leading "[mm:ss]" tags:
//
//	track := model.Track{Title: "Song", Artist: "Artist", AudioURL: "/uploads/a.mp3"}
//	fmt.Println(track.DisplayName()) // "Artist - Song"
//
// # Albums, Playlists and Pages
//
// Content is the bulk snapshot shown on the home view. A Page is the
// detail view of an album or playlist:
//
//	page := &model.Page{Kind: model.PagePlaylist, Info: model.PageInfo{Title: "Road Trip"}}
//	fmt.Println(page.FileName(model.PlaylistFormatM3U)) // "Road Trip.m3u"
//
// # Users
//
// User is the persisted session account. Only users with RoleArtist may
// author content:
//
//	if user.IsArtist() {
//	    // show the lyrics editor
//	}
package model
