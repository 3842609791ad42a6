package service

import (
	"context"

	"commusics/internal/models"
	"commusics/internal/repository"
)

// SongRef identifies a song either by internal row ID or by Spotify
// catalog payload. Clients pass the payload straight from a catalog
// search result; the row is upserted on first use.
type SongRef struct {
	SongID      *uint        `json:"song_id,omitempty"`
	SpotifyID   string       `json:"spotify_id,omitempty"`
	Name        string       `json:"name,omitempty"`
	AlbumArtURL string       `json:"album_art_url,omitempty"`
	Artists     []ArtistRef  `json:"artists,omitempty"`
}

// ArtistRef identifies an artist by internal row ID or Spotify payload.
type ArtistRef struct {
	ArtistID  *uint  `json:"artist_id,omitempty"`
	SpotifyID string `json:"spotify_id,omitempty"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// VideoRef identifies a video by internal row ID or YouTube payload.
type VideoRef struct {
	VideoID      *uint  `json:"video_id,omitempty"`
	YoutubeID    string `json:"youtube_id,omitempty"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ChannelTitle string `json:"channel_title,omitempty"`
	ArtistID     *uint  `json:"artist_id,omitempty"`
}

func resolveSongRef(ctx context.Context, repo repository.CatalogRepository, ref SongRef) (uint, error) {
	if ref.SongID != nil {
		song, err := repo.GetSongByID(ctx, *ref.SongID)
		if err != nil {
			return 0, err
		}
		return song.ID, nil
	}
	if ref.SpotifyID == "" {
		return 0, models.NewValidationError("A song reference needs song_id or spotify_id")
	}
	artists := make([]repository.ArtistInput, 0, len(ref.Artists))
	for _, a := range ref.Artists {
		if a.SpotifyID == "" {
			return 0, models.NewValidationError("Song artists must carry a spotify_id")
		}
		artists = append(artists, repository.ArtistInput{SpotifyID: a.SpotifyID, Name: a.Name, ImageURL: a.ImageURL})
	}
	song, err := repo.GetOrCreateSong(ctx, repository.SongInput{
		SpotifyID:   ref.SpotifyID,
		Name:        ref.Name,
		AlbumArtURL: ref.AlbumArtURL,
		Artists:     artists,
	})
	if err != nil {
		return 0, err
	}
	return song.ID, nil
}

func resolveArtistRef(ctx context.Context, repo repository.CatalogRepository, ref ArtistRef) (uint, error) {
	if ref.ArtistID != nil {
		artist, err := repo.GetArtistByID(ctx, *ref.ArtistID)
		if err != nil {
			return 0, err
		}
		return artist.ID, nil
	}
	if ref.SpotifyID == "" {
		return 0, models.NewValidationError("An artist reference needs artist_id or spotify_id")
	}
	artist, err := repo.GetOrCreateArtist(ctx, repository.ArtistInput{
		SpotifyID: ref.SpotifyID,
		Name:      ref.Name,
		ImageURL:  ref.ImageURL,
	})
	if err != nil {
		return 0, err
	}
	return artist.ID, nil
}

func resolveVideoRef(ctx context.Context, repo repository.CatalogRepository, ref VideoRef) (uint, error) {
	if ref.VideoID != nil {
		video, err := repo.GetVideoByID(ctx, *ref.VideoID)
		if err != nil {
			return 0, err
		}
		return video.ID, nil
	}
	if ref.YoutubeID == "" {
		return 0, models.NewValidationError("A video reference needs video_id or youtube_id")
	}
	video, err := repo.GetOrCreateVideo(ctx, repository.VideoInput{
		YoutubeID:    ref.YoutubeID,
		Title:        ref.Title,
		ThumbnailURL: ref.ThumbnailURL,
		ChannelTitle: ref.ChannelTitle,
		ArtistID:     ref.ArtistID,
	})
	if err != nil {
		return 0, err
	}
	return video.ID, nil
}
