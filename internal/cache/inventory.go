package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	PostKeyPrefix   = "post:%d"
	LiveKeyPrefix   = "live:%d"
	ArtistKeyPrefix = "artist:%d"
)

const (
	UserTTL   = 5 * time.Minute
	PostTTL   = 30 * time.Minute
	LiveTTL   = 10 * time.Minute
	ArtistTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func LiveKey(liveID uint) string {
	return fmt.Sprintf(LiveKeyPrefix, liveID)
}

func ArtistKey(artistID uint) string {
	return fmt.Sprintf(ArtistKeyPrefix, artistID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateLive(ctx context.Context, liveID uint) {
	Invalidate(ctx, LiveKey(liveID))
}
