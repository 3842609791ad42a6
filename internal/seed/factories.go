// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"commusics/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions controls factory behavior.
type SeedOptions struct {
	// DryRun builds entities with synthetic IDs and skips all DB writes.
	DryRun bool
	// SkipBcrypt stores the plain password instead of hashing it.
	SkipBcrypt bool
	// MaxDays is the spread of generated created_at timestamps into the past.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

var (
	songWords = []string{
		"Shallow", "Echoes", "Horizon", "Bloom", "Static", "Velvet", "Neon",
		"Drift", "Parade", "Mirror", "Glass", "Thunder", "Paper", "Golden",
		"Silver", "Midnight", "Morning", "Slow", "Electric", "Hollow",
	}
	artistWords = []string{
		"Club", "Orchestra", "Collective", "Theory", "Youth", "Garden",
		"Signal", "Motel", "Riot", "Archive", "Department", "Union",
	}
	venues = []string{
		"Shibuya O-East", "Liquidroom", "Zepp DiverCity", "Club Quattro",
		"Shinjuku Loft", "Studio Coast", "Fever", "Unit", "Basement Bar",
	}
	postTemplates = []string{
		"Can't stop playing this one.",
		"This live changed my life, no exaggeration.",
		"Finally saw them in person. Worth every yen.",
		"New MV dropped and it's everything I hoped for.",
		"Sleeper track of the year, mark my words.",
		"On repeat since this morning.",
		"Who else is going next month?",
	}
)

func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func (f *Factory) pick(words []string) string {
	return words[f.rng.Intn(len(words))]
}

// SongName generates a plausible track title.
func (f *Factory) SongName() string {
	if f.rng.Intn(2) == 0 {
		return f.pick(songWords)
	}
	return f.pick(songWords) + " " + f.pick(songWords)
}

// ArtistName generates a plausible band or artist name.
func (f *Factory) ArtistName() string {
	switch f.rng.Intn(3) {
	case 0:
		return "The " + f.pick(songWords) + " " + f.pick(artistWords)
	case 1:
		return f.pick(songWords) + " " + f.pick(artistWords)
	default:
		return gofakeit.FirstName() + " " + f.pick(artistWords)
	}
}

// Handle generates a handle that passes signup validation.
func (f *Factory) Handle() string {
	return fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Handle:    f.Handle(),
		Nickname:  gofakeit.FirstName() + " " + gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CreatedAt: f.pastTime(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArtist constructs and persists a catalog artist with a fake Spotify ID.
func (f *Factory) CreateArtist(overrides ...func(*models.Artist)) (*models.Artist, error) {
	spotifyID := "seed-" + gofakeit.UUID()[:18]
	artist := &models.Artist{
		SpotifyID: &spotifyID,
		Name:      f.ArtistName(),
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/300/300", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(artist)
	}

	if f.opts.DryRun {
		f.nextID++
		artist.ID = f.nextID
		return artist, nil
	}

	if err := f.db.Create(artist).Error; err != nil {
		return nil, err
	}
	return artist, nil
}

// CreateSong constructs and persists a song linked to the given artists
// in order; the first one becomes the primary artist.
func (f *Factory) CreateSong(artists []*models.Artist, overrides ...func(*models.Song)) (*models.Song, error) {
	song := &models.Song{
		SpotifyID:   "seed-" + gofakeit.UUID()[:18],
		Name:        f.SongName(),
		AlbumArtURL: fmt.Sprintf("https://picsum.photos/seed/%s/640/640", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(song)
	}

	if f.opts.DryRun {
		f.nextID++
		song.ID = f.nextID
		for i, artist := range artists {
			song.Artists = append(song.Artists, models.SongArtist{
				SongID: song.ID, ArtistID: artist.ID, Artist: artist, Position: i,
			})
		}
		return song, nil
	}

	if err := f.db.Create(song).Error; err != nil {
		return nil, err
	}
	for i, artist := range artists {
		link := models.SongArtist{SongID: song.ID, ArtistID: artist.ID, Position: i}
		if err := f.db.Create(&link).Error; err != nil {
			return nil, err
		}
	}
	return song, nil
}

// CreateVideo constructs and persists a video, optionally owned by an artist.
func (f *Factory) CreateVideo(artist *models.Artist, overrides ...func(*models.Video)) (*models.Video, error) {
	youtubeID := gofakeit.LetterN(11)
	video := &models.Video{
		YoutubeID:    youtubeID,
		Title:        f.SongName() + " (Official Video)",
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", youtubeID),
		ChannelTitle: gofakeit.Company(),
	}
	if artist != nil {
		video.ArtistID = &artist.ID
		video.ChannelTitle = artist.Name + " Official"
	}

	for _, override := range overrides {
		override(video)
	}

	if f.opts.DryRun {
		f.nextID++
		video.ID = f.nextID
		return video, nil
	}

	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// CreateLive constructs and persists a live with the given lineup in order.
func (f *Factory) CreateLive(artists []*models.Artist, overrides ...func(*models.Live)) (*models.Live, error) {
	headliner := "a line-up"
	if len(artists) > 0 {
		headliner = artists[0].Name
	}
	live := &models.Live{
		Title:  fmt.Sprintf("%s %s Tour", headliner, f.pick(songWords)),
		Venue:  f.pick(venues),
		HeldOn: f.pastTime(),
	}

	for _, override := range overrides {
		override(live)
	}

	if f.opts.DryRun {
		f.nextID++
		live.ID = f.nextID
		for i, artist := range artists {
			live.Artists = append(live.Artists, models.LiveArtist{
				LiveID: live.ID, ArtistID: artist.ID, Artist: artist, Position: i,
			})
		}
		return live, nil
	}

	if err := f.db.Create(live).Error; err != nil {
		return nil, err
	}
	for i, artist := range artists {
		link := models.LiveArtist{LiveID: live.ID, ArtistID: artist.ID, Position: i}
		if err := f.db.Create(&link).Error; err != nil {
			return nil, err
		}
	}
	return live, nil
}

// PostContent generates a short music-flavored post body.
func (f *Factory) PostContent() string {
	return f.pick(postTemplates) + " " + gofakeit.Sentence(f.rng.Intn(8)+4)
}

// CreatePost constructs and persists a post with its tags for the given user.
func (f *Factory) CreatePost(user *models.User, tags []models.Tag, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Content:   f.PostContent(),
		CreatedAt: f.pastTime(),
	}

	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		post.Tags = tags
		log.Printf("[dry-run] CreatePost: user=%d tags=%d", post.UserID, len(tags))
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	for i := range tags {
		tags[i].PostID = post.ID
		if err := f.db.Create(&tags[i]).Error; err != nil {
			return nil, err
		}
	}
	return post, nil
}
