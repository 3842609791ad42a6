package seed

import (
	"fmt"
	"log"

	"commusics/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumArtists  int
	NumPosts    int
	NumLives    int
	ShouldClean bool
}

// Seeder populates the database with interlinked demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, SeedOptions{})}
}

// ClearAll removes all seeded rows. Edge tables go first so foreign keys
// never dangle mid-delete.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"favorite_videos", "favorite_artists", "favorite_songs",
		"live_attendances", "likes", "followers",
		"tags", "posts",
		"live_artists", "song_artists",
		"lives", "videos", "songs", "artists",
		"users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Seeding %d users, %d artists, %d posts, %d lives...",
		opts.NumUsers, opts.NumArtists, opts.NumPosts, opts.NumLives)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))

	artists := make([]*models.Artist, 0, opts.NumArtists)
	for i := 0; i < opts.NumArtists; i++ {
		artist, err := s.factory.CreateArtist()
		if err != nil {
			return fmt.Errorf("failed to create artist: %w", err)
		}
		artists = append(artists, artist)
	}
	log.Printf("✓ %d artists created", len(artists))

	songs, videos, err := s.seedCatalog(artists)
	if err != nil {
		return err
	}
	log.Printf("✓ %d songs and %d videos created", len(songs), len(videos))

	lives, err := s.seedLives(artists, opts.NumLives)
	if err != nil {
		return err
	}
	log.Printf("✓ %d lives created", len(lives))

	if err := s.seedPosts(users, songs, artists, lives, videos, opts.NumPosts); err != nil {
		return err
	}
	log.Printf("✓ %d posts created", opts.NumPosts)

	if err := s.seedSocialMesh(users, lives); err != nil {
		return err
	}
	log.Println("✓ Follows, likes, and attendance created")

	if err := s.seedFavorites(users, songs, artists, videos); err != nil {
		return err
	}
	log.Println("✓ Favorites created")

	return nil
}

// seedCatalog creates two songs and one video per artist, plus a few
// collaboration songs crediting two artists.
func (s *Seeder) seedCatalog(artists []*models.Artist) ([]*models.Song, []*models.Video, error) {
	var songs []*models.Song
	var videos []*models.Video

	for _, artist := range artists {
		for i := 0; i < 2; i++ {
			song, err := s.factory.CreateSong([]*models.Artist{artist})
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create song: %w", err)
			}
			songs = append(songs, song)
		}
		video, err := s.factory.CreateVideo(artist)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create video: %w", err)
		}
		videos = append(videos, video)
	}

	for i := 0; i+1 < len(artists) && i < 6; i += 2 {
		song, err := s.factory.CreateSong([]*models.Artist{artists[i], artists[i+1]})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create collaboration song: %w", err)
		}
		songs = append(songs, song)
	}
	return songs, videos, nil
}

func (s *Seeder) seedLives(artists []*models.Artist, count int) ([]*models.Live, error) {
	lives := make([]*models.Live, 0, count)
	for i := 0; i < count; i++ {
		lineup := []*models.Artist{artists[i%len(artists)]}
		if i%3 == 0 && len(artists) > 1 {
			lineup = append(lineup, artists[(i+1)%len(artists)])
		}
		live, err := s.factory.CreateLive(lineup)
		if err != nil {
			return nil, fmt.Errorf("failed to create live: %w", err)
		}
		lives = append(lives, live)
	}
	return lives, nil
}

// seedPosts spreads posts across users, cycling through the four tag kinds.
func (s *Seeder) seedPosts(
	users []*models.User,
	songs []*models.Song,
	artists []*models.Artist,
	lives []*models.Live,
	videos []*models.Video,
	count int,
) error {
	for i := 0; i < count; i++ {
		user := users[i%len(users)]
		var tags []models.Tag
		switch i % 5 {
		case 0:
			songID := songs[i%len(songs)].ID
			tags = []models.Tag{{SongID: &songID}}
		case 1:
			artistID := artists[i%len(artists)].ID
			tags = []models.Tag{{ArtistID: &artistID}}
		case 2:
			liveID := lives[i%len(lives)].ID
			tags = []models.Tag{{LiveID: &liveID}}
		case 3:
			videoID := videos[i%len(videos)].ID
			tags = []models.Tag{{VideoID: &videoID}}
		default:
			// untagged post
		}
		if _, err := s.factory.CreatePost(user, tags); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
	}
	return nil
}

// seedSocialMesh wires follow edges, likes, and live attendance between the
// seeded users.
func (s *Seeder) seedSocialMesh(users []*models.User, lives []*models.Live) error {
	for i, user := range users {
		for j := 1; j <= 3 && j < len(users); j++ {
			target := users[(i+j)%len(users)]
			if target.ID == user.ID {
				continue
			}
			edge := models.Follower{FollowerID: user.ID, FollowingID: target.ID}
			if err := s.db.Create(&edge).Error; err != nil {
				return fmt.Errorf("failed to create follow: %w", err)
			}
		}
	}

	var posts []models.Post
	if err := s.db.Limit(200).Find(&posts).Error; err != nil {
		return fmt.Errorf("failed to load posts for likes: %w", err)
	}
	for i, post := range posts {
		for j := 0; j <= i%4 && j < len(users); j++ {
			liker := users[(i+j)%len(users)]
			like := models.Like{UserID: liker.ID, PostID: post.ID}
			if err := s.db.Create(&like).Error; err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}
	}

	for i, live := range lives {
		for j := 0; j <= i%5 && j < len(users); j++ {
			attendee := users[(i+j)%len(users)]
			attendance := models.LiveAttendance{UserID: attendee.ID, LiveID: live.ID}
			if err := s.db.Create(&attendance).Error; err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedFavorites(
	users []*models.User,
	songs []*models.Song,
	artists []*models.Artist,
	videos []*models.Video,
) error {
	for i, user := range users {
		if i%2 == 0 {
			continue
		}
		for order := 0; order < 3 && order < len(songs); order++ {
			fav := models.FavoriteSong{
				UserID:    user.ID,
				SongID:    songs[(i+order)%len(songs)].ID,
				SortOrder: order,
			}
			if err := s.db.Create(&fav).Error; err != nil {
				return fmt.Errorf("failed to create favorite song: %w", err)
			}
		}
		fav := models.FavoriteArtist{UserID: user.ID, ArtistID: artists[i%len(artists)].ID}
		if err := s.db.Create(&fav).Error; err != nil {
			return fmt.Errorf("failed to create favorite artist: %w", err)
		}
		if i%3 == 0 {
			favVideo := models.FavoriteVideo{UserID: user.ID, VideoID: videos[i%len(videos)].ID}
			if err := s.db.Create(&favVideo).Error; err != nil {
				return fmt.Errorf("failed to create favorite video: %w", err)
			}
		}
	}
	return nil
}
